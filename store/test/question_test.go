package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall/store"
)

// addScheduledQuestion creates a question and sets its scheduling state,
// mirroring what a completed review would have written.
func addScheduledQuestion(ctx context.Context, t *testing.T, ts *store.Store, uid string, ease float64, nextReviewAt *int64) *store.Question {
	created, err := ts.CreateQuestion(ctx, &store.Question{
		UID:          uid,
		QuestionText: "What is the expected value of a fair six-sided die?",
		Topic:        "probability",
		EaseFactor:   ease,
	})
	require.NoError(t, err)

	if nextReviewAt != nil {
		require.NoError(t, ts.UpdateQuestion(ctx, &store.UpdateQuestion{
			ID:           created.ID,
			EaseFactor:   &ease,
			NextReviewAt: nextReviewAt,
		}))
	}

	return created
}

func TestListQuestionsDueOrderEaseTieBreak(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	dueAt := int64(1_700_000_000)
	now := dueAt + 60

	// Three equally overdue questions with different ease factors,
	// inserted in neither ascending nor descending ease order.
	addScheduledQuestion(ctx, t, ts, "q-easy", 2.8, &dueAt)
	addScheduledQuestion(ctx, t, ts, "q-hard", 1.5, &dueAt)
	addScheduledQuestion(ctx, t, ts, "q-mid", 2.1, &dueAt)

	list, err := ts.ListQuestions(ctx, &store.FindQuestion{
		DueBefore:  &now,
		OrderByDue: true,
	})
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Equal next_review_at: lower ease (the harder item) comes first.
	require.Equal(t, "q-hard", list[0].UID)
	require.Equal(t, "q-mid", list[1].UID)
	require.Equal(t, "q-easy", list[2].UID)

	// The selector takes only the top row; it must be the hardest one.
	top, err := ts.GetQuestion(ctx, &store.FindQuestion{
		DueBefore:  &now,
		OrderByDue: true,
	})
	require.NoError(t, err)
	require.NotNil(t, top)
	require.Equal(t, "q-hard", top.UID)
}

func TestListQuestionsNeverReviewedSortsFirst(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	dueAt := int64(1_700_000_000)
	now := dueAt + 60

	addScheduledQuestion(ctx, t, ts, "q-overdue", 1.5, &dueAt)
	fresh := addScheduledQuestion(ctx, t, ts, "q-fresh", 2.5, nil)
	require.Nil(t, fresh.NextReviewAt)

	list, err := ts.ListQuestions(ctx, &store.FindQuestion{
		DueBefore:  &now,
		OrderByDue: true,
	})
	require.NoError(t, err)

	// A NULL next_review_at means never reviewed: it matches the due
	// filter and sorts ahead of every dated row, even an overdue one
	// with a lower ease factor.
	require.Len(t, list, 2)
	require.Equal(t, "q-fresh", list[0].UID)
	require.Equal(t, "q-overdue", list[1].UID)
}
