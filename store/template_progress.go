package store

import (
	"context"
	"time"
)

// TemplateProgress is the per-template-family scheduling state. Questions
// are generated fresh each time, so spaced repetition tracks the template,
// not the individual question.
type TemplateProgress struct {
	TemplateType string
	UpdatedTs    int64

	EaseFactor   float64
	IntervalDays int
	NextReviewAt *int64

	TotalAttempts   int
	CorrectAttempts int
}

// IsDue reports whether the template is due at the given time.
func (p *TemplateProgress) IsDue(now time.Time) bool {
	return p.NextReviewAt == nil || *p.NextReviewAt <= now.Unix()
}

// Accuracy returns the fraction of correct attempts, 0 when untried.
func (p *TemplateProgress) Accuracy() float64 {
	if p.TotalAttempts == 0 {
		return 0
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts)
}

// FindTemplateProgress is the find condition for template progress records.
type FindTemplateProgress struct {
	// TemplateTypes restricts to the given template ids (topic filtering
	// happens against the registry before querying).
	TemplateTypes []string
	// DueBefore filters to records due at or before the timestamp.
	DueBefore *int64
	// OrderByDue orders by next_review_at ascending, ease_factor ascending.
	OrderByDue bool

	Limit *int
}

// UpsertTemplateProgress writes the post-review scheduling state for a
// template and bumps the attempt counters in the same statement.
type UpsertTemplateProgress struct {
	TemplateType string
	EaseFactor   float64
	IntervalDays int
	NextReviewAt *int64
	IsCorrect    bool
}

func (s *Store) UpsertTemplateProgress(ctx context.Context, upsert *UpsertTemplateProgress) (*TemplateProgress, error) {
	return s.driver.UpsertTemplateProgress(ctx, upsert)
}

func (s *Store) ListTemplateProgress(ctx context.Context, find *FindTemplateProgress) ([]*TemplateProgress, error) {
	return s.driver.ListTemplateProgress(ctx, find)
}

// GetTemplateProgress gets the progress record for one template, or nil
// when the template was never attempted.
func (s *Store) GetTemplateProgress(ctx context.Context, templateType string) (*TemplateProgress, error) {
	limit := 1
	list, err := s.driver.ListTemplateProgress(ctx, &FindTemplateProgress{
		TemplateTypes: []string{templateType},
		Limit:         &limit,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
