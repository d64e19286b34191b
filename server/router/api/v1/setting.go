package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "github.com/recallhq/recall/server/internal/errors"
)

// LLMMode reports which LLM backend answers chat requests: "local" runs
// through Ollama, "web" through Gemini.
type LLMMode struct {
	Mode     string `json:"mode"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

type SetLLMModeRequest struct {
	Mode string `json:"mode"`
}

func providerForMode(mode string) string {
	if mode == "local" {
		return "ollama"
	}
	return "gemini"
}

func modeForProvider(provider string) string {
	if provider == "ollama" {
		return "local"
	}
	return "web"
}

func (s *APIV1Service) GetLLMMode(c echo.Context) error {
	provider, model := s.LLM.CurrentProvider()
	return c.JSON(http.StatusOK, &LLMMode{
		Mode:     modeForProvider(provider),
		Provider: provider,
		Model:    model,
	})
}

func (s *APIV1Service) SetLLMMode(c echo.Context) error {
	req := &SetLLMModeRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
	}
	if req.Mode != "local" && req.Mode != "web" {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "mode must be 'local' or 'web'"))
	}

	provider := providerForMode(req.Mode)
	if err := s.LLM.SetProvider(provider); err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInvalidInput, "failed to switch provider"))
	}

	_, model := s.LLM.CurrentProvider()
	return c.JSON(http.StatusOK, &LLMMode{
		Mode:     req.Mode,
		Provider: provider,
		Model:    model,
	})
}
