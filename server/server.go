// Package server wires the HTTP server: echo instance, middleware, the v1
// REST API and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/recallhq/recall/internal/profile"
	"github.com/recallhq/recall/plugin/llm"
	"github.com/recallhq/recall/internal/observability"
	recallmw "github.com/recallhq/recall/server/middleware"
	apiv1 "github.com/recallhq/recall/server/router/api/v1"
	"github.com/recallhq/recall/server/service/learn"
	"github.com/recallhq/recall/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer   *echo.Echo
	llmProvider  *llm.Provider
	learnService *learn.Service
}

func NewServer(profile *profile.Profile, store *store.Store) (*Server, error) {
	llmProvider, err := llm.NewProvider(&llm.Config{
		Provider:      profile.LLMProvider,
		GeminiAPIKey:  profile.GeminiAPIKey,
		GeminiModel:   profile.GeminiModel,
		OpenAIAPIKey:  profile.OpenAIAPIKey,
		OpenAIModel:   profile.OpenAIModel,
		OllamaBaseURL: profile.OllamaBaseURL,
		OllamaModel:   profile.OllamaModel,
		Timeout:       profile.LLMTimeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM provider")
	}

	learnService := learn.NewService(store, llmProvider, learn.Config{
		RephraseQuestions: profile.RephraseQuestions,
		LLMTimeout:        profile.LLMTimeout,
	})

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())
	echoServer.Use(observability.RequestLogger())
	echoServer.Use(recallmw.DefaultRateLimiter().Middleware())

	s := &Server{
		Profile:      profile,
		Store:        store,
		echoServer:   echoServer,
		llmProvider:  llmProvider,
		learnService: learnService,
	}

	echoServer.GET("/healthz", s.healthz)

	apiService := apiv1.NewAPIV1Service(profile, store, llmProvider, learnService)
	apiService.RegisterRoutes(echoServer)

	return s, nil
}

func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started", "address", address, "mode", s.Profile.Mode)

	go func() {
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}

	slog.Info("server shutdown complete")
}

func (s *Server) healthz(c echo.Context) error {
	if err := s.Store.GetDriver().GetDB().PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
