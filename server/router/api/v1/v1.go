// Package v1 exposes the JSON REST API under /api/v1.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recallhq/recall/internal/profile"
	"github.com/recallhq/recall/plugin/llm"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/server/service/learn"
	"github.com/recallhq/recall/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	LLM     *llm.Provider
	Learn   *learn.Service
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, provider *llm.Provider, learnService *learn.Service) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Store:   store,
		LLM:     provider,
		Learn:   learnService,
	}
}

// RegisterRoutes registers all v1 routes on the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	g := echoServer.Group("/api/v1")

	g.POST("/questions", s.CreateQuestion)
	g.GET("/questions", s.ListQuestions)
	g.POST("/questions/refine", s.RefineQuestion)
	g.GET("/questions/:id", s.GetQuestion)
	g.PUT("/questions/:id", s.UpdateQuestion)
	g.DELETE("/questions/:id", s.DeleteQuestion)

	g.GET("/learn/next", s.NextQuestion)
	g.POST("/learn/submit", s.SubmitAnswer)
	g.GET("/learn/stats", s.LearnStats)

	g.GET("/math/templates", s.ListMathTemplates)
	g.GET("/math/topics", s.ListMathTopics)
	g.GET("/math/next", s.NextMathQuestion)
	g.POST("/math/submit", s.SubmitMathAnswer)
	g.GET("/math/history", s.MathHistory)
	g.GET("/math/stats", s.MathStats)

	g.GET("/settings/llm-mode", s.GetLLMMode)
	g.PUT("/settings/llm-mode", s.SetLLMMode)
}

// errorJSON translates a service error into an HTTP response.
func errorJSON(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch errs.CodeOf(err) {
	case errs.ErrCodeNotFound:
		status = http.StatusNotFound
	case errs.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errs.ErrCodeLLMUnavailable:
		status = http.StatusServiceUnavailable
	}

	message := err.Error()
	var re *errs.ReviewError
	if errors.As(err, &re) {
		message = re.Message
	}

	return c.JSON(status, map[string]string{"message": message})
}
