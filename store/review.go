package store

import (
	"context"
)

// Review is one submitted answer to a fixed question, with the feedback
// and score it earned. Append-only; never mutated.
type Review struct {
	ID        int32
	UID       string
	CreatedTs int64

	QuestionID  int32
	UserAnswer  string
	LLMFeedback string
	Score       *int
}

// FindReview is the find condition for reviews.
type FindReview struct {
	QuestionID *int32
	Limit      *int
}

// MathReview is one submitted answer to a generated math question.
// Append-only; never mutated.
type MathReview struct {
	ID        int32
	UID       string
	CreatedTs int64

	MathQuestionID int32
	UserAnswer     float64
	IsCorrect      bool
	LLMFeedback    string
}

// MathHistoryEntry is a math review joined with its generated question.
type MathHistoryEntry struct {
	Review   MathReview
	Question MathQuestion
}

func (s *Store) CreateReview(ctx context.Context, create *Review) (*Review, error) {
	return s.driver.CreateReview(ctx, create)
}

func (s *Store) ListReviews(ctx context.Context, find *FindReview) ([]*Review, error) {
	return s.driver.ListReviews(ctx, find)
}

func (s *Store) CreateMathReview(ctx context.Context, create *MathReview) (*MathReview, error) {
	return s.driver.CreateMathReview(ctx, create)
}

func (s *Store) ListMathHistory(ctx context.Context, limit int) ([]*MathHistoryEntry, error) {
	return s.driver.ListMathHistory(ctx, limit)
}
