package store

import (
	"context"
	"time"
)

// Question is a fixed Q&A item carrying its own scheduling state.
type Question struct {
	ID        int32
	UID       string
	CreatedTs int64
	UpdatedTs int64

	QuestionText string
	AnswerText   *string
	Topic        string
	Tags         []string

	// Spaced repetition state. A nil NextReviewAt means the question was
	// never reviewed and is always due.
	EaseFactor   float64
	IntervalDays int
	NextReviewAt *int64
	ReviewCount  int
}

// IsDue reports whether the question is due at the given time.
func (q *Question) IsDue(now time.Time) bool {
	return q.NextReviewAt == nil || *q.NextReviewAt <= now.Unix()
}

// FindQuestion is the find condition for questions.
type FindQuestion struct {
	ID    *int32
	UID   *string
	Topic *string
	// Tag restricts to questions bearing the tag (focus mode).
	Tag *string

	// DueBefore filters to questions due at or before the timestamp;
	// never-reviewed questions always match.
	DueBefore *int64
	// OrderByDue orders by next_review_at ascending with ease_factor
	// ascending as tie-break, so harder items surface first among equally
	// overdue ones.
	OrderByDue bool
	// Random returns rows in random order; used for the fallback pool draw.
	Random bool

	Limit  *int
	Offset *int
}

// UpdateQuestion is the update request for a question.
type UpdateQuestion struct {
	ID           int32
	QuestionText *string
	AnswerText   *string
	Topic        *string
	Tags         *[]string

	EaseFactor   *float64
	IntervalDays *int
	NextReviewAt *int64
	// IncrementReviewCount bumps review_count atomically in the same write.
	IncrementReviewCount bool
}

// DeleteQuestion is the delete request for a question.
type DeleteQuestion struct {
	ID int32
}

// QuestionStats summarizes scheduling state over a question pool.
type QuestionStats struct {
	TotalQuestions int
	DueNow         int
	DueToday       int
	NeverReviewed  int
	AvgEaseFactor  float64
}

func (s *Store) CreateQuestion(ctx context.Context, create *Question) (*Question, error) {
	return s.driver.CreateQuestion(ctx, create)
}

func (s *Store) ListQuestions(ctx context.Context, find *FindQuestion) ([]*Question, error) {
	return s.driver.ListQuestions(ctx, find)
}

// GetQuestion gets a single question, or nil when none matches.
func (s *Store) GetQuestion(ctx context.Context, find *FindQuestion) (*Question, error) {
	limit := 1
	find.Limit = &limit
	list, err := s.driver.ListQuestions(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateQuestion(ctx context.Context, update *UpdateQuestion) error {
	return s.driver.UpdateQuestion(ctx, update)
}

func (s *Store) DeleteQuestion(ctx context.Context, delete *DeleteQuestion) error {
	return s.driver.DeleteQuestion(ctx, delete)
}

func (s *Store) GetQuestionStats(ctx context.Context, find *FindQuestion) (*QuestionStats, error) {
	return s.driver.GetQuestionStats(ctx, find)
}
