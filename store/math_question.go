package store

import (
	"context"
)

// MathQuestion is a generated math question. It is created at selection
// time, graded exactly once, and is a read-only historical record after
// that. The correct answer lives only here and in the grading path; it is
// never returned to the client before submission.
type MathQuestion struct {
	ID        int32
	UID       string
	CreatedTs int64

	TemplateType string
	Topic        string
	// Params is the sampled parameter assignment, JSON-encoded.
	Params        string
	CorrectAnswer float64
	DisplayText   string
}

// FindMathQuestion is the find condition for generated math questions.
type FindMathQuestion struct {
	ID  *int32
	UID *string

	Limit *int
}

func (s *Store) CreateMathQuestion(ctx context.Context, create *MathQuestion) (*MathQuestion, error) {
	return s.driver.CreateMathQuestion(ctx, create)
}

func (s *Store) ListMathQuestions(ctx context.Context, find *FindMathQuestion) ([]*MathQuestion, error) {
	return s.driver.ListMathQuestions(ctx, find)
}

// GetMathQuestion gets a single generated question, or nil when none matches.
func (s *Store) GetMathQuestion(ctx context.Context, find *FindMathQuestion) (*MathQuestion, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.driver.ListMathQuestions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
