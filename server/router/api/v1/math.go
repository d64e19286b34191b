package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/recallhq/recall/internal/mathgen"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/server/service/learn"
)

// MathTemplateInfo is the public description of a problem template.
type MathTemplateInfo struct {
	TypeID  string `json:"type_id"`
	Topic   string `json:"topic"`
	Concept string `json:"concept"`
	AsksFor string `json:"asks_for"`
}

func (s *APIV1Service) ListMathTemplates(c echo.Context) error {
	topic := c.QueryParam("topic")
	templates := mathgen.All()
	if topic != "" {
		templates = mathgen.ByTopic(topic)
	}

	list := make([]MathTemplateInfo, 0, len(templates))
	for _, t := range templates {
		list = append(list, MathTemplateInfo{
			TypeID:  t.TypeID,
			Topic:   t.Topic,
			Concept: t.Concept,
			AsksFor: t.AsksFor,
		})
	}
	return c.JSON(http.StatusOK, list)
}

func (s *APIV1Service) ListMathTopics(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"topics": mathgen.Topics()})
}

// NextMathQuestion generates a new math question, honoring topic and
// template_type filters.
func (s *APIV1Service) NextMathQuestion(c echo.Context) error {
	question, err := s.Learn.NextMathQuestion(c.Request().Context(), c.QueryParam("topic"), c.QueryParam("template_type"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, question)
}

type SubmitMathRequest struct {
	MathQuestionID int32   `json:"math_question_id"`
	UserAnswer     float64 `json:"user_answer"`
}

// SubmitMathAnswer grades a numeric submission against its stored question.
func (s *APIV1Service) SubmitMathAnswer(c echo.Context) error {
	req := &SubmitMathRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
	}
	if req.MathQuestionID == 0 {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "math_question_id is required"))
	}

	result, err := s.Learn.SubmitAnswer(c.Request().Context(), &learn.SubmitRequest{
		QuestionType: learn.TypeMath,
		QuestionID:   req.MathQuestionID,
		UserAnswer:   strconv.FormatFloat(req.UserAnswer, 'g', -1, 64),
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *APIV1Service) MathHistory(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "invalid limit"))
		}
		limit = parsed
	}

	history, err := s.Learn.MathHistory(c.Request().Context(), limit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

func (s *APIV1Service) MathStats(c echo.Context) error {
	stats, err := s.Learn.MathStats(c.Request().Context(), c.QueryParam("topic"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
