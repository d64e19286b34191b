package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/recallhq/recall/store"
)

func (d *DB) CreateQuestion(ctx context.Context, create *store.Question) (*store.Question, error) {
	fields := []string{"uid", "question_text", "answer_text", "topic", "tags", "ease_factor"}
	placeholderValues := []any{
		create.UID, create.QuestionText, create.AnswerText, create.Topic,
		marshalTags(create.Tags), create.EaseFactor,
	}

	stmt := `INSERT INTO question (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts, interval_days, review_count`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
		&create.IntervalDays,
		&create.ReviewCount,
	); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return create, nil
}

func (d *DB) ListQuestions(ctx context.Context, find *store.FindQuestion) ([]*store.Question, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "question.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "question.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Topic; v != nil {
		where, args = append(where, "question.topic = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Tag; v != nil {
		where, args = append(where, "question.tags LIKE "+placeholder(len(args)+1)), append(args, tagPattern(*v))
	}
	if v := find.DueBefore; v != nil {
		// Never-reviewed questions (NULL) are always due.
		where, args = append(where, "(question.next_review_at IS NULL OR question.next_review_at <= "+placeholder(len(args)+1)+")"), append(args, *v)
	}

	// SQLite sorts NULLs first in ASC order, so never-reviewed questions
	// surface before everything else in the due ordering.
	orderBy := "ORDER BY question.created_ts DESC"
	if find.OrderByDue {
		orderBy = "ORDER BY question.next_review_at ASC, question.ease_factor ASC"
	} else if find.Random {
		orderBy = "ORDER BY RANDOM()"
	}

	query := `
		SELECT
			id, uid, created_ts, updated_ts,
			question_text, answer_text, topic, tags,
			ease_factor, interval_days, next_review_at, review_count
		FROM question
		WHERE ` + strings.Join(where, " AND ") + ` ` + orderBy

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Question, 0)
	for rows.Next() {
		var question store.Question
		var answerText sql.NullString
		var nextReviewAt sql.NullInt64
		var tags string

		if err := rows.Scan(
			&question.ID,
			&question.UID,
			&question.CreatedTs,
			&question.UpdatedTs,
			&question.QuestionText,
			&answerText,
			&question.Topic,
			&tags,
			&question.EaseFactor,
			&question.IntervalDays,
			&nextReviewAt,
			&question.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		if answerText.Valid {
			question.AnswerText = &answerText.String
		}
		if nextReviewAt.Valid {
			question.NextReviewAt = &nextReviewAt.Int64
		}
		question.Tags = unmarshalTags(tags)

		list = append(list, &question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateQuestion(ctx context.Context, update *store.UpdateQuestion) error {
	set, args := []string{"updated_ts = strftime('%s', 'now')"}, []any{}

	if v := update.QuestionText; v != nil {
		set, args = append(set, "question_text = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.AnswerText; v != nil {
		set, args = append(set, "answer_text = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Topic; v != nil {
		set, args = append(set, "topic = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Tags; v != nil {
		set, args = append(set, "tags = "+placeholder(len(args)+1)), append(args, marshalTags(*v))
	}
	if v := update.EaseFactor; v != nil {
		set, args = append(set, "ease_factor = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.IntervalDays; v != nil {
		set, args = append(set, "interval_days = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.NextReviewAt; v != nil {
		set, args = append(set, "next_review_at = "+placeholder(len(args)+1)), append(args, *v)
	}
	if update.IncrementReviewCount {
		set = append(set, "review_count = review_count + 1")
	}

	args = append(args, update.ID)

	stmt := `UPDATE question SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}

	return nil
}

func (d *DB) DeleteQuestion(ctx context.Context, delete *store.DeleteQuestion) error {
	stmt := `DELETE FROM question WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("question not found")
	}

	return nil
}

func (d *DB) GetQuestionStats(ctx context.Context, find *store.FindQuestion) (*store.QuestionStats, error) {
	where, whereArgs := []string{"1 = 1"}, []any{}

	if v := find.Topic; v != nil {
		where, whereArgs = append(where, "topic = ?"), append(whereArgs, *v)
	}
	if v := find.Tag; v != nil {
		where, whereArgs = append(where, "tags LIKE ?"), append(whereArgs, tagPattern(*v))
	}

	now := int64(0)
	if find.DueBefore != nil {
		now = *find.DueBefore
	}
	endOfDay := now + 24*60*60

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN next_review_at IS NULL OR next_review_at <= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN next_review_at > ? AND next_review_at <= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN review_count = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(ease_factor), 0)
		FROM question
		WHERE ` + strings.Join(where, " AND ")

	// Placeholders bind in order of appearance: the three in the SELECT
	// list come before the WHERE clause args.
	args := append([]any{now, now, endOfDay}, whereArgs...)

	stats := &store.QuestionStats{}
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalQuestions,
		&stats.DueNow,
		&stats.DueToday,
		&stats.NeverReviewed,
		&stats.AvgEaseFactor,
	); err != nil {
		return nil, fmt.Errorf("failed to query question stats: %w", err)
	}

	return stats, nil
}
