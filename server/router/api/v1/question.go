package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/recallhq/recall/internal/srs"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/store"
)

// Question is the API representation of a fixed Q&A item.
type Question struct {
	ID           int32    `json:"id"`
	UID          string   `json:"uid"`
	QuestionText string   `json:"question_text"`
	AnswerText   *string  `json:"answer_text"`
	Topic        string   `json:"topic"`
	Tags         []string `json:"tags"`
	EaseFactor   float64  `json:"ease_factor"`
	IntervalDays int      `json:"interval_days"`
	NextReviewAt *int64   `json:"next_review_at"`
	ReviewCount  int      `json:"review_count"`
	CreatedTs    int64    `json:"created_ts"`
	UpdatedTs    int64    `json:"updated_ts"`
}

func convertQuestion(q *store.Question) *Question {
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Question{
		ID:           q.ID,
		UID:          q.UID,
		QuestionText: q.QuestionText,
		AnswerText:   q.AnswerText,
		Topic:        q.Topic,
		Tags:         tags,
		EaseFactor:   q.EaseFactor,
		IntervalDays: q.IntervalDays,
		NextReviewAt: q.NextReviewAt,
		ReviewCount:  q.ReviewCount,
		CreatedTs:    q.CreatedTs,
		UpdatedTs:    q.UpdatedTs,
	}
}

type CreateQuestionRequest struct {
	QuestionText string   `json:"question_text"`
	AnswerText   *string  `json:"answer_text"`
	Topic        string   `json:"topic"`
	Tags         []string `json:"tags"`
}

func (s *APIV1Service) CreateQuestion(c echo.Context) error {
	req := &CreateQuestionRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
	}
	if req.QuestionText == "" || req.Topic == "" {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "question_text and topic are required"))
	}

	question, err := s.Store.CreateQuestion(c.Request().Context(), &store.Question{
		UID:          shortuuid.New(),
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		Topic:        req.Topic,
		Tags:         req.Tags,
		EaseFactor:   srs.DefaultEaseFactor,
	})
	if err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to create question"))
	}

	return c.JSON(http.StatusCreated, convertQuestion(question))
}

func (s *APIV1Service) ListQuestions(c echo.Context) error {
	find := &store.FindQuestion{}
	if topic := c.QueryParam("topic"); topic != "" {
		find.Topic = &topic
	}

	questions, err := s.Store.ListQuestions(c.Request().Context(), find)
	if err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to list questions"))
	}

	list := make([]*Question, 0, len(questions))
	for _, question := range questions {
		list = append(list, convertQuestion(question))
	}
	return c.JSON(http.StatusOK, list)
}

func (s *APIV1Service) GetQuestion(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	question, err := s.Store.GetQuestion(c.Request().Context(), &store.FindQuestion{ID: &id})
	if err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to get question"))
	}
	if question == nil {
		return errorJSON(c, errs.New(errs.ErrCodeNotFound, "question not found"))
	}

	return c.JSON(http.StatusOK, convertQuestion(question))
}

type UpdateQuestionRequest struct {
	QuestionText *string   `json:"question_text"`
	AnswerText   *string   `json:"answer_text"`
	Topic        *string   `json:"topic"`
	Tags         *[]string `json:"tags"`
}

func (s *APIV1Service) UpdateQuestion(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	req := &UpdateQuestionRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
	}

	ctx := c.Request().Context()
	existing, err := s.Store.GetQuestion(ctx, &store.FindQuestion{ID: &id})
	if err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to get question"))
	}
	if existing == nil {
		return errorJSON(c, errs.New(errs.ErrCodeNotFound, "question not found"))
	}

	if err := s.Store.UpdateQuestion(ctx, &store.UpdateQuestion{
		ID:           id,
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		Topic:        req.Topic,
		Tags:         req.Tags,
	}); err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to update question"))
	}

	updated, err := s.Store.GetQuestion(ctx, &store.FindQuestion{ID: &id})
	if err != nil || updated == nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to reload question"))
	}
	return c.JSON(http.StatusOK, convertQuestion(updated))
}

func (s *APIV1Service) DeleteQuestion(c echo.Context) error {
	id, err := questionID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	ctx := c.Request().Context()
	existing, err := s.Store.GetQuestion(ctx, &store.FindQuestion{ID: &id})
	if err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to get question"))
	}
	if existing == nil {
		return errorJSON(c, errs.New(errs.ErrCodeNotFound, "question not found"))
	}

	if err := s.Store.DeleteQuestion(ctx, &store.DeleteQuestion{ID: id}); err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeInternal, "failed to delete question"))
	}
	return c.NoContent(http.StatusNoContent)
}

type RefineRequest struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type RefineResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RefineQuestion polishes a rough question/answer pair into reference-grade
// study material before it gets saved.
func (s *APIV1Service) RefineQuestion(c echo.Context) error {
	req := &RefineRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
	}
	if req.Question == "" {
		return errorJSON(c, errs.New(errs.ErrCodeInvalidInput, "question is required"))
	}

	refined, err := s.LLM.RefineQA(c.Request().Context(), req.Topic, req.Question, req.Answer)
	if err != nil {
		return errorJSON(c, errs.Wrap(err, errs.ErrCodeLLMUnavailable, "failed to refine question"))
	}

	return c.JSON(http.StatusOK, &RefineResponse{
		Question: refined.Question,
		Answer:   refined.Answer,
	})
}

func questionID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "invalid question id")
	}
	return int32(id), nil
}
