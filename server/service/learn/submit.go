package learn

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lithammer/shortuuid/v4"

	"github.com/recallhq/recall/internal/mathgen"
	"github.com/recallhq/recall/internal/srs"
	"github.com/recallhq/recall/plugin/llm"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/store"
)

// placeholderFeedback stands in when the feedback generator is unreachable.
// The schedule update proceeds regardless.
const placeholderFeedback = "Feedback is temporarily unavailable. Your review was still recorded."

// defaultScore is used for scheduling when the grader returned no usable
// score. Neutral: neither grows nor resets the interval aggressively.
const defaultScore = 3

// SubmitRequest is a unified answer submission for either question type.
type SubmitRequest struct {
	QuestionType string `json:"question_type"`
	QuestionID   int32  `json:"question_id"`
	UserAnswer   string `json:"user_answer"`
}

// SubmitResult is the unified review outcome.
type SubmitResult struct {
	ID           int32  `json:"id"`
	QuestionType string `json:"question_type"`
	UserAnswer   string `json:"user_answer"`
	LLMFeedback  string `json:"llm_feedback"`

	// Regular outcome.
	Score *int `json:"score,omitempty"`

	// Math outcome. The correct answer is revealed only after submission.
	IsCorrect     *bool    `json:"is_correct,omitempty"`
	CorrectAnswer *float64 `json:"correct_answer,omitempty"`
}

// SubmitAnswer grades a submission, updates the spaced repetition schedule
// and records the review. Routing follows the question type.
func (s *Service) SubmitAnswer(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	if req.QuestionType == TypeMath {
		return s.submitMathAnswer(ctx, req)
	}
	return s.submitRegularAnswer(ctx, req)
}

func (s *Service) submitRegularAnswer(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	unlock := s.locks.Lock(fmt.Sprintf("question/%d", req.QuestionID))
	defer unlock()

	question, err := s.store.GetQuestion(ctx, &store.FindQuestion{ID: &req.QuestionID})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to get question")
	}
	if question == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "question not found")
	}

	// Grading is best-effort: a generator failure degrades to placeholder
	// feedback with a neutral score and never blocks the schedule write.
	feedback := &llm.Feedback{Raw: placeholderFeedback}
	err = s.withLLM(ctx, func(ctx context.Context) error {
		graded, err := s.llm.ScoreAnswer(ctx, question.QuestionText, req.UserAnswer, question.AnswerText)
		if err != nil {
			return err
		}
		feedback = graded
		return nil
	})
	if err != nil {
		slog.Warn("failed to score answer, degrading to placeholder feedback", "question", question.ID, "error", err)
	}

	score := defaultScore
	if feedback.Score != nil {
		score = *feedback.Score
	}

	now := s.now()
	result := srs.Update(score, question.EaseFactor, question.IntervalDays, question.ReviewCount, now)
	nextReviewAt := result.NextReviewAt.Unix()

	if err := s.store.UpdateQuestion(ctx, &store.UpdateQuestion{
		ID:                   question.ID,
		EaseFactor:           &result.EaseFactor,
		IntervalDays:         &result.IntervalDays,
		NextReviewAt:         &nextReviewAt,
		IncrementReviewCount: true,
	}); err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to update question schedule")
	}

	review, err := s.store.CreateReview(ctx, &store.Review{
		UID:         shortuuid.New(),
		QuestionID:  question.ID,
		UserAnswer:  req.UserAnswer,
		LLMFeedback: feedback.Raw,
		Score:       feedback.Score,
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to record review")
	}

	return &SubmitResult{
		ID:           review.ID,
		QuestionType: TypeRegular,
		UserAnswer:   req.UserAnswer,
		LLMFeedback:  feedback.Raw,
		Score:        feedback.Score,
	}, nil
}

func (s *Service) submitMathAnswer(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	userAnswer, err := strconv.ParseFloat(req.UserAnswer, 64)
	if err != nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "math answers must be numeric")
	}

	question, err := s.store.GetMathQuestion(ctx, &store.FindMathQuestion{ID: &req.QuestionID})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to get math question")
	}
	if question == nil {
		return nil, errs.New(errs.ErrCodeNotFound, "math question not found")
	}

	template, ok := mathgen.Get(question.TemplateType)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnknownTemplate, "unknown template type: %s", question.TemplateType)
	}

	grade := mathgen.Grade(userAnswer, question.CorrectAnswer, template.Tolerance)

	feedback := placeholderFeedback
	err = s.withLLM(ctx, func(ctx context.Context) error {
		text, err := s.llm.MathFeedback(ctx, question.DisplayText, template.Concept, question.CorrectAnswer, userAnswer, grade.IsCorrect)
		if err != nil {
			return err
		}
		if text != "" {
			feedback = text
		}
		return nil
	})
	if err != nil {
		slog.Warn("failed to generate math feedback, degrading to placeholder", "question", question.ID, "error", err)
	}

	if err := s.updateTemplateSchedule(ctx, question.TemplateType, grade.IsCorrect); err != nil {
		return nil, err
	}

	review, err := s.store.CreateMathReview(ctx, &store.MathReview{
		UID:            shortuuid.New(),
		MathQuestionID: question.ID,
		UserAnswer:     userAnswer,
		IsCorrect:      grade.IsCorrect,
		LLMFeedback:    feedback,
	})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to record math review")
	}

	return &SubmitResult{
		ID:            review.ID,
		QuestionType:  TypeMath,
		UserAnswer:    req.UserAnswer,
		LLMFeedback:   feedback,
		IsCorrect:     &grade.IsCorrect,
		CorrectAnswer: &question.CorrectAnswer,
	}, nil
}

// updateTemplateSchedule applies the binary SM-2 step to a template's
// progress record under its identity lock.
func (s *Service) updateTemplateSchedule(ctx context.Context, templateType string, isCorrect bool) error {
	unlock := s.locks.Lock("template/" + templateType)
	defer unlock()

	ease := srs.DefaultEaseFactor
	intervalDays := 0
	attempts := 0

	progress, err := s.store.GetTemplateProgress(ctx, templateType)
	if err != nil {
		return errs.Wrap(err, errs.ErrCodeInternal, "failed to get template progress")
	}
	if progress != nil {
		ease = progress.EaseFactor
		intervalDays = progress.IntervalDays
		attempts = progress.TotalAttempts
	}

	result := srs.UpdateBinary(isCorrect, ease, intervalDays, attempts, s.now())
	nextReviewAt := result.NextReviewAt.Unix()

	if _, err := s.store.UpsertTemplateProgress(ctx, &store.UpsertTemplateProgress{
		TemplateType: templateType,
		EaseFactor:   result.EaseFactor,
		IntervalDays: result.IntervalDays,
		NextReviewAt: &nextReviewAt,
		IsCorrect:    isCorrect,
	}); err != nil {
		return errs.Wrap(err, errs.ErrCodeInternal, "failed to upsert template progress")
	}

	return nil
}
