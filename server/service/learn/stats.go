package learn

import (
	"context"
	"strings"

	"github.com/recallhq/recall/internal/mathgen"
	"github.com/recallhq/recall/internal/srs"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/store"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Stats summarizes the fixed question pool's scheduling state.
func (s *Service) Stats(ctx context.Context, topic, focus string) (*store.QuestionStats, error) {
	now := s.now().Unix()

	find := &store.FindQuestion{DueBefore: &now}
	if topic != "" {
		find.Topic = &topic
	}
	if strings.ToLower(strings.TrimSpace(focus)) == FocusWork {
		tag := FocusWork
		find.Tag = &tag
	}

	stats, err := s.store.GetQuestionStats(ctx, find)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to get question stats")
	}
	return stats, nil
}

// TemplateStat is one template's scheduling state, registry data joined in.
// Templates never attempted appear with default state and are always due.
type TemplateStat struct {
	TemplateType    string  `json:"template_type"`
	Concept         string  `json:"concept"`
	Topic           string  `json:"topic"`
	EaseFactor      float64 `json:"ease_factor"`
	IntervalDays    int     `json:"interval_days"`
	NextReviewAt    *int64  `json:"next_review_at"`
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	Accuracy        float64 `json:"accuracy"`
	IsDue           bool    `json:"is_due"`
}

// MathStatsSummary aggregates over all templates in a stats response.
type MathStatsSummary struct {
	TotalTemplates  int     `json:"total_templates"`
	TemplatesDue    int     `json:"templates_due"`
	TotalAttempts   int     `json:"total_attempts"`
	OverallAccuracy float64 `json:"overall_accuracy"`
}

// MathStats is the math pool's scheduling state.
type MathStats struct {
	Templates []TemplateStat   `json:"templates"`
	Summary   MathStatsSummary `json:"summary"`
}

// MathStats reports per-template scheduling state plus a summary,
// optionally filtered by topic.
func (s *Service) MathStats(ctx context.Context, topic string) (*MathStats, error) {
	now := s.now()
	templateIDs := mathgen.TypeIDs(topic)

	inScope := map[string]bool{}
	for _, id := range templateIDs {
		inScope[id] = true
	}

	rows, err := s.store.ListTemplateProgress(ctx, &store.FindTemplateProgress{OrderByDue: true})
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to list template progress")
	}

	attempted := map[string]bool{}
	templates := []TemplateStat{}

	for _, row := range rows {
		attempted[row.TemplateType] = true
		if topic != "" && !inScope[row.TemplateType] {
			continue
		}

		concept, rowTopic := "Unknown", "Unknown"
		if template, ok := mathgen.Get(row.TemplateType); ok {
			concept, rowTopic = template.Concept, template.Topic
		}

		templates = append(templates, TemplateStat{
			TemplateType:    row.TemplateType,
			Concept:         concept,
			Topic:           rowTopic,
			EaseFactor:      row.EaseFactor,
			IntervalDays:    row.IntervalDays,
			NextReviewAt:    row.NextReviewAt,
			TotalAttempts:   row.TotalAttempts,
			CorrectAttempts: row.CorrectAttempts,
			Accuracy:        row.Accuracy(),
			IsDue:           row.IsDue(now),
		})
	}

	for _, id := range templateIDs {
		if attempted[id] {
			continue
		}
		template, ok := mathgen.Get(id)
		if !ok {
			continue
		}
		templates = append(templates, TemplateStat{
			TemplateType: id,
			Concept:      template.Concept,
			Topic:        template.Topic,
			EaseFactor:   srs.DefaultEaseFactor,
			IsDue:        true,
		})
	}

	summary := MathStatsSummary{TotalTemplates: len(templates)}
	correctAttempts := 0
	for _, t := range templates {
		summary.TotalAttempts += t.TotalAttempts
		correctAttempts += t.CorrectAttempts
		if t.IsDue {
			summary.TemplatesDue++
		}
	}
	if summary.TotalAttempts > 0 {
		summary.OverallAccuracy = float64(correctAttempts) / float64(summary.TotalAttempts)
	}

	return &MathStats{Templates: templates, Summary: summary}, nil
}

// HistoryEntry is one past math attempt with its question context.
type HistoryEntry struct {
	ID            int32   `json:"id"`
	TemplateType  string  `json:"template_type"`
	Topic         string  `json:"topic"`
	Question      string  `json:"question"`
	UserAnswer    float64 `json:"user_answer"`
	CorrectAnswer float64 `json:"correct_answer"`
	IsCorrect     bool    `json:"is_correct"`
	Feedback      string  `json:"feedback"`
	CreatedTs     int64   `json:"created_ts"`
}

// MathHistory returns recent math attempts, newest first.
func (s *Service) MathHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := s.store.ListMathHistory(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, errs.ErrCodeInternal, "failed to list math history")
	}

	history := make([]HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		history = append(history, HistoryEntry{
			ID:            entry.Review.ID,
			TemplateType:  entry.Question.TemplateType,
			Topic:         entry.Question.Topic,
			Question:      entry.Question.DisplayText,
			UserAnswer:    entry.Review.UserAnswer,
			CorrectAnswer: entry.Question.CorrectAnswer,
			IsCorrect:     entry.Review.IsCorrect,
			Feedback:      entry.Review.LLMFeedback,
			CreatedTs:     entry.Review.CreatedTs,
		})
	}
	return history, nil
}
