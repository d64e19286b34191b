package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/recallhq/recall/store"
)

func (d *DB) UpsertTemplateProgress(ctx context.Context, upsert *store.UpsertTemplateProgress) (*store.TemplateProgress, error) {
	correct := 0
	if upsert.IsCorrect {
		correct = 1
	}

	stmt := `
		INSERT INTO math_template_progress (
			template_type, ease_factor, interval_days, next_review_at,
			total_attempts, correct_attempts, updated_ts
		)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT (template_type) DO UPDATE SET
			ease_factor = excluded.ease_factor,
			interval_days = excluded.interval_days,
			next_review_at = excluded.next_review_at,
			total_attempts = math_template_progress.total_attempts + 1,
			correct_attempts = math_template_progress.correct_attempts + excluded.correct_attempts,
			updated_ts = excluded.updated_ts
		RETURNING template_type, updated_ts, ease_factor, interval_days, next_review_at, total_attempts, correct_attempts`

	progress := &store.TemplateProgress{}
	var nextReviewAt sql.NullInt64
	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.TemplateType, upsert.EaseFactor, upsert.IntervalDays, upsert.NextReviewAt,
		correct, time.Now().Unix(),
	).Scan(
		&progress.TemplateType,
		&progress.UpdatedTs,
		&progress.EaseFactor,
		&progress.IntervalDays,
		&nextReviewAt,
		&progress.TotalAttempts,
		&progress.CorrectAttempts,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert template progress: %w", err)
	}
	if nextReviewAt.Valid {
		progress.NextReviewAt = &nextReviewAt.Int64
	}

	return progress, nil
}

func (d *DB) ListTemplateProgress(ctx context.Context, find *store.FindTemplateProgress) ([]*store.TemplateProgress, error) {
	where, args := []string{"1 = 1"}, []any{}

	if len(find.TemplateTypes) > 0 {
		list := make([]string, 0, len(find.TemplateTypes))
		for _, templateType := range find.TemplateTypes {
			list = append(list, placeholder(len(args)+1))
			args = append(args, templateType)
		}
		where = append(where, "template_type IN ("+strings.Join(list, ", ")+")")
	}
	if v := find.DueBefore; v != nil {
		where, args = append(where, "(next_review_at IS NULL OR next_review_at <= "+placeholder(len(args)+1)+")"), append(args, *v)
	}

	orderBy := "ORDER BY next_review_at ASC"
	if find.OrderByDue {
		orderBy = "ORDER BY next_review_at ASC, ease_factor ASC"
	}

	query := `
		SELECT
			template_type, updated_ts, ease_factor, interval_days,
			next_review_at, total_attempts, correct_attempts
		FROM math_template_progress
		WHERE ` + strings.Join(where, " AND ") + ` ` + orderBy

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query template progress: %w", err)
	}
	defer rows.Close()

	list := make([]*store.TemplateProgress, 0)
	for rows.Next() {
		var progress store.TemplateProgress
		var nextReviewAt sql.NullInt64

		if err := rows.Scan(
			&progress.TemplateType,
			&progress.UpdatedTs,
			&progress.EaseFactor,
			&progress.IntervalDays,
			&nextReviewAt,
			&progress.TotalAttempts,
			&progress.CorrectAttempts,
		); err != nil {
			return nil, fmt.Errorf("failed to scan template progress: %w", err)
		}
		if nextReviewAt.Valid {
			progress.NextReviewAt = &nextReviewAt.Int64
		}

		list = append(list, &progress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template progress: %w", err)
	}

	return list, nil
}
