package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/recallhq/recall/store"
)

func (d *DB) CreateMathQuestion(ctx context.Context, create *store.MathQuestion) (*store.MathQuestion, error) {
	fields := []string{"uid", "template_type", "topic", "params", "correct_answer", "display_text"}
	placeholderValues := []any{
		create.UID, create.TemplateType, create.Topic,
		create.Params, create.CorrectAnswer, create.DisplayText,
	}

	stmt := `INSERT INTO math_question (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create math question: %w", err)
	}

	return create, nil
}

func (d *DB) ListMathQuestions(ctx context.Context, find *store.FindMathQuestion) ([]*store.MathQuestion, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "math_question.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "math_question.uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, created_ts,
			template_type, topic, params, correct_answer, display_text
		FROM math_question
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query math questions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.MathQuestion, 0)
	for rows.Next() {
		var question store.MathQuestion
		if err := rows.Scan(
			&question.ID,
			&question.UID,
			&question.CreatedTs,
			&question.TemplateType,
			&question.Topic,
			&question.Params,
			&question.CorrectAnswer,
			&question.DisplayText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan math question: %w", err)
		}
		list = append(list, &question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate math questions: %w", err)
	}

	return list, nil
}
