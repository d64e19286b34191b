package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/recallhq/recall/store"
)

func (d *DB) CreateReview(ctx context.Context, create *store.Review) (*store.Review, error) {
	fields := []string{"uid", "question_id", "user_answer", "llm_feedback", "score"}
	placeholderValues := []any{
		create.UID, create.QuestionID, create.UserAnswer, create.LLMFeedback, create.Score,
	}

	stmt := `INSERT INTO review (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return create, nil
}

func (d *DB) ListReviews(ctx context.Context, find *store.FindReview) ([]*store.Review, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.QuestionID; v != nil {
		where, args = append(where, "question_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, question_id, user_answer, llm_feedback, score
		FROM review
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Review, 0)
	for rows.Next() {
		var review store.Review
		var score sql.NullInt64

		if err := rows.Scan(
			&review.ID,
			&review.UID,
			&review.CreatedTs,
			&review.QuestionID,
			&review.UserAnswer,
			&review.LLMFeedback,
			&score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		if score.Valid {
			v := int(score.Int64)
			review.Score = &v
		}

		list = append(list, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return list, nil
}

func (d *DB) CreateMathReview(ctx context.Context, create *store.MathReview) (*store.MathReview, error) {
	fields := []string{"uid", "math_question_id", "user_answer", "is_correct", "llm_feedback"}
	placeholderValues := []any{
		create.UID, create.MathQuestionID, create.UserAnswer, create.IsCorrect, create.LLMFeedback,
	}

	stmt := `INSERT INTO math_review (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create math review: %w", err)
	}

	return create, nil
}

func (d *DB) ListMathHistory(ctx context.Context, limit int) ([]*store.MathHistoryEntry, error) {
	query := `
		SELECT
			mr.id, mr.uid, mr.created_ts, mr.math_question_id,
			mr.user_answer, mr.is_correct, mr.llm_feedback,
			mq.id, mq.uid, mq.created_ts, mq.template_type, mq.topic,
			mq.params, mq.correct_answer, mq.display_text
		FROM math_review mr
		JOIN math_question mq ON mq.id = mr.math_question_id
		ORDER BY mr.created_ts DESC
		LIMIT ` + fmt.Sprintf("%d", limit)

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query math history: %w", err)
	}
	defer rows.Close()

	list := make([]*store.MathHistoryEntry, 0)
	for rows.Next() {
		var entry store.MathHistoryEntry
		if err := rows.Scan(
			&entry.Review.ID,
			&entry.Review.UID,
			&entry.Review.CreatedTs,
			&entry.Review.MathQuestionID,
			&entry.Review.UserAnswer,
			&entry.Review.IsCorrect,
			&entry.Review.LLMFeedback,
			&entry.Question.ID,
			&entry.Question.UID,
			&entry.Question.CreatedTs,
			&entry.Question.TemplateType,
			&entry.Question.Topic,
			&entry.Question.Params,
			&entry.Question.CorrectAnswer,
			&entry.Question.DisplayText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan math history entry: %w", err)
		}
		list = append(list, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate math history: %w", err)
	}

	return list, nil
}
