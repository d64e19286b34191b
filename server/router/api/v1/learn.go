package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/server/service/learn"
)

// NextQuestion returns the next item to review, interleaving fixed
// questions and generated math problems.
func (s *APIV1Service) NextQuestion(c echo.Context) error {
	card, err := s.Learn.NextQuestion(c.Request().Context(), c.QueryParam("topic"), c.QueryParam("focus"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, card)
}

// SubmitAnswer grades a unified submission and returns the review outcome.
func (s *APIV1Service) SubmitAnswer(c echo.Context) error {
	req := &learn.SubmitRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
	}
	if req.QuestionID == 0 {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "question_id is required"))
	}

	result, err := s.Learn.SubmitAnswer(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// LearnStats reports scheduling statistics for the fixed question pool.
func (s *APIV1Service) LearnStats(c echo.Context) error {
	stats, err := s.Learn.Stats(c.Request().Context(), c.QueryParam("topic"), c.QueryParam("focus"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total_questions": stats.TotalQuestions,
		"due_now":         stats.DueNow,
		"due_today":       stats.DueToday,
		"never_reviewed":  stats.NeverReviewed,
		"avg_ease_factor": stats.AvgEaseFactor,
	})
}
