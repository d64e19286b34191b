package learn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall/internal/srs"
	"github.com/recallhq/recall/plugin/llm"
	errs "github.com/recallhq/recall/server/internal/errors"
	"github.com/recallhq/recall/store"
)

// fakeDriver is an in-memory store.Driver for service tests.
type fakeDriver struct {
	questions     map[int32]*store.Question
	mathQuestions map[int32]*store.MathQuestion
	progress      map[string]*store.TemplateProgress
	reviews       []*store.Review
	mathReviews   []*store.MathReview

	nextQuestionID int32
	nextMathID     int32
	nextReviewID   int32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		questions:     map[int32]*store.Question{},
		mathQuestions: map[int32]*store.MathQuestion{},
		progress:      map[string]*store.TemplateProgress{},
	}
}

func (d *fakeDriver) GetDB() *sql.DB { return nil }
func (d *fakeDriver) Close() error   { return nil }
func (d *fakeDriver) IsInitialized(context.Context) (bool, error) {
	return true, nil
}

func (d *fakeDriver) CreateQuestion(_ context.Context, create *store.Question) (*store.Question, error) {
	d.nextQuestionID++
	create.ID = d.nextQuestionID
	d.questions[create.ID] = create
	return create, nil
}

func (d *fakeDriver) ListQuestions(_ context.Context, find *store.FindQuestion) ([]*store.Question, error) {
	list := []*store.Question{}
	for _, q := range d.questions {
		if find.ID != nil && q.ID != *find.ID {
			continue
		}
		if find.Topic != nil && q.Topic != *find.Topic {
			continue
		}
		if find.Tag != nil && !hasTag(q.Tags, *find.Tag) {
			continue
		}
		if find.DueBefore != nil {
			if q.NextReviewAt != nil && *q.NextReviewAt > *find.DueBefore {
				continue
			}
		}
		list = append(list, q)
	}
	sort.Slice(list, func(i, j int) bool {
		if find.OrderByDue {
			a, b := list[i], list[j]
			av, bv := int64(-1), int64(-1)
			if a.NextReviewAt != nil {
				av = *a.NextReviewAt
			}
			if b.NextReviewAt != nil {
				bv = *b.NextReviewAt
			}
			if av != bv {
				return av < bv
			}
			return a.EaseFactor < b.EaseFactor
		}
		return list[i].ID < list[j].ID
	})
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (d *fakeDriver) UpdateQuestion(_ context.Context, update *store.UpdateQuestion) error {
	q, ok := d.questions[update.ID]
	if !ok {
		return errors.New("question not found")
	}
	if update.QuestionText != nil {
		q.QuestionText = *update.QuestionText
	}
	if update.AnswerText != nil {
		q.AnswerText = update.AnswerText
	}
	if update.Topic != nil {
		q.Topic = *update.Topic
	}
	if update.Tags != nil {
		q.Tags = *update.Tags
	}
	if update.EaseFactor != nil {
		q.EaseFactor = *update.EaseFactor
	}
	if update.IntervalDays != nil {
		q.IntervalDays = *update.IntervalDays
	}
	if update.NextReviewAt != nil {
		q.NextReviewAt = update.NextReviewAt
	}
	if update.IncrementReviewCount {
		q.ReviewCount++
	}
	return nil
}

func (d *fakeDriver) DeleteQuestion(_ context.Context, find *store.DeleteQuestion) error {
	if _, ok := d.questions[find.ID]; !ok {
		return errors.New("question not found")
	}
	delete(d.questions, find.ID)
	return nil
}

func (d *fakeDriver) GetQuestionStats(_ context.Context, find *store.FindQuestion) (*store.QuestionStats, error) {
	now := int64(0)
	if find.DueBefore != nil {
		now = *find.DueBefore
	}
	stats := &store.QuestionStats{}
	sum := 0.0
	for _, q := range d.questions {
		if find.Topic != nil && q.Topic != *find.Topic {
			continue
		}
		if find.Tag != nil && !hasTag(q.Tags, *find.Tag) {
			continue
		}
		stats.TotalQuestions++
		sum += q.EaseFactor
		if q.NextReviewAt == nil || *q.NextReviewAt <= now {
			stats.DueNow++
		} else if *q.NextReviewAt <= now+24*60*60 {
			stats.DueToday++
		}
		if q.ReviewCount == 0 {
			stats.NeverReviewed++
		}
	}
	if stats.TotalQuestions > 0 {
		stats.AvgEaseFactor = sum / float64(stats.TotalQuestions)
	}
	return stats, nil
}

func (d *fakeDriver) CreateMathQuestion(_ context.Context, create *store.MathQuestion) (*store.MathQuestion, error) {
	d.nextMathID++
	create.ID = d.nextMathID
	create.CreatedTs = time.Now().Unix()
	d.mathQuestions[create.ID] = create
	return create, nil
}

func (d *fakeDriver) ListMathQuestions(_ context.Context, find *store.FindMathQuestion) ([]*store.MathQuestion, error) {
	list := []*store.MathQuestion{}
	for _, q := range d.mathQuestions {
		if find.ID != nil && q.ID != *find.ID {
			continue
		}
		list = append(list, q)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (d *fakeDriver) UpsertTemplateProgress(_ context.Context, upsert *store.UpsertTemplateProgress) (*store.TemplateProgress, error) {
	correct := 0
	if upsert.IsCorrect {
		correct = 1
	}
	p, ok := d.progress[upsert.TemplateType]
	if !ok {
		p = &store.TemplateProgress{TemplateType: upsert.TemplateType}
		d.progress[upsert.TemplateType] = p
	}
	p.EaseFactor = upsert.EaseFactor
	p.IntervalDays = upsert.IntervalDays
	p.NextReviewAt = upsert.NextReviewAt
	p.TotalAttempts++
	p.CorrectAttempts += correct
	return p, nil
}

func (d *fakeDriver) ListTemplateProgress(_ context.Context, find *store.FindTemplateProgress) ([]*store.TemplateProgress, error) {
	inScope := map[string]bool{}
	for _, id := range find.TemplateTypes {
		inScope[id] = true
	}
	list := []*store.TemplateProgress{}
	for _, p := range d.progress {
		if len(find.TemplateTypes) > 0 && !inScope[p.TemplateType] {
			continue
		}
		if find.DueBefore != nil {
			if p.NextReviewAt != nil && *p.NextReviewAt > *find.DueBefore {
				continue
			}
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		av, bv := int64(-1), int64(-1)
		if a.NextReviewAt != nil {
			av = *a.NextReviewAt
		}
		if b.NextReviewAt != nil {
			bv = *b.NextReviewAt
		}
		if av != bv {
			return av < bv
		}
		if find.OrderByDue && a.EaseFactor != b.EaseFactor {
			return a.EaseFactor < b.EaseFactor
		}
		return a.TemplateType < b.TemplateType
	})
	if find.Limit != nil && len(list) > *find.Limit {
		list = list[:*find.Limit]
	}
	return list, nil
}

func (d *fakeDriver) CreateReview(_ context.Context, create *store.Review) (*store.Review, error) {
	d.nextReviewID++
	create.ID = d.nextReviewID
	create.CreatedTs = time.Now().Unix()
	d.reviews = append(d.reviews, create)
	return create, nil
}

func (d *fakeDriver) ListReviews(_ context.Context, find *store.FindReview) ([]*store.Review, error) {
	list := []*store.Review{}
	for _, r := range d.reviews {
		if find.QuestionID != nil && r.QuestionID != *find.QuestionID {
			continue
		}
		list = append(list, r)
	}
	return list, nil
}

func (d *fakeDriver) CreateMathReview(_ context.Context, create *store.MathReview) (*store.MathReview, error) {
	d.nextReviewID++
	create.ID = d.nextReviewID
	create.CreatedTs = time.Now().Unix()
	d.mathReviews = append(d.mathReviews, create)
	return create, nil
}

func (d *fakeDriver) ListMathHistory(_ context.Context, limit int) ([]*store.MathHistoryEntry, error) {
	list := []*store.MathHistoryEntry{}
	for i := len(d.mathReviews) - 1; i >= 0 && len(list) < limit; i-- {
		review := d.mathReviews[i]
		question := d.mathQuestions[review.MathQuestionID]
		list = append(list, &store.MathHistoryEntry{Review: *review, Question: *question})
	}
	return list, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// fakeLLM is a canned FeedbackGenerator.
type fakeLLM struct {
	score int
	fail  bool
}

func (f *fakeLLM) ScoreAnswer(context.Context, string, string, *string) (*llm.Feedback, error) {
	if f.fail {
		return nil, errors.New("llm unreachable")
	}
	score := f.score
	return &llm.Feedback{Score: &score, Verdict: "ok", Raw: fmt.Sprintf("SCORE: %d", score)}, nil
}

func (f *fakeLLM) RephraseQuestion(_ context.Context, text string) (string, error) {
	if f.fail {
		return "", errors.New("llm unreachable")
	}
	return "rephrased: " + text, nil
}

func (f *fakeLLM) GenerateWordProblem(context.Context, string, map[string]float64, string, string) (string, error) {
	if f.fail {
		return "", errors.New("llm unreachable")
	}
	return "a generated word problem", nil
}

func (f *fakeLLM) MathFeedback(context.Context, string, string, float64, float64, bool) (string, error) {
	if f.fail {
		return "", errors.New("llm unreachable")
	}
	return "nice work", nil
}

func newTestService(t *testing.T, driver *fakeDriver, generator FeedbackGenerator) *Service {
	t.Helper()
	s := NewService(store.New(driver, nil), generator, Config{
		RephraseQuestions:     false,
		LLMTimeout:            time.Second,
		MaxConcurrentLLMCalls: 4,
	})
	s.rng = rand.New(rand.NewSource(42))
	return s
}

func addQuestion(d *fakeDriver, topic string, tags []string, nextReviewAt *int64) *store.Question {
	d.nextQuestionID++
	q := &store.Question{
		ID:           d.nextQuestionID,
		UID:          fmt.Sprintf("q%d", d.nextQuestionID),
		QuestionText: "what is the ease factor",
		Topic:        topic,
		Tags:         tags,
		EaseFactor:   srs.DefaultEaseFactor,
		NextReviewAt: nextReviewAt,
	}
	d.questions[q.ID] = q
	return q
}

func int64Ptr(v int64) *int64 { return &v }

func TestNextQuestionFocusWorkOnlyRegular(t *testing.T) {
	driver := newFakeDriver()
	addQuestion(driver, "go", []string{"work"}, int64Ptr(time.Now().Add(-time.Hour).Unix()))
	s := newTestService(t, driver, &fakeLLM{score: 4})

	for i := 0; i < 20; i++ {
		card, err := s.NextQuestion(context.Background(), "", "work")
		require.NoError(t, err)
		assert.Equal(t, TypeRegular, card.QuestionType)
		require.NotNil(t, card.Regular)
	}
}

func TestNextQuestionFocusWorkSuppressesMath(t *testing.T) {
	driver := newFakeDriver()
	// Only a non-work question exists; every math template is untried but
	// focus mode must not surface the math pool.
	addQuestion(driver, "go", nil, int64Ptr(time.Now().Add(-time.Hour).Unix()))
	s := newTestService(t, driver, &fakeLLM{score: 4})

	_, err := s.NextQuestion(context.Background(), "", "work")
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeNotFound))
}

func TestNextQuestionInterleaving(t *testing.T) {
	driver := newFakeDriver()
	addQuestion(driver, "go", nil, int64Ptr(time.Now().Add(-time.Hour).Unix()))
	s := newTestService(t, driver, &fakeLLM{score: 4})

	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		card, err := s.NextQuestion(context.Background(), "", "")
		require.NoError(t, err)
		counts[card.QuestionType]++
	}

	// A due question and an always-due untried template each get a uniform
	// coin flip; over 200 draws both types must appear in force.
	assert.Greater(t, counts[TypeRegular], 60, "regular pool starved: %v", counts)
	assert.Greater(t, counts[TypeMath], 60, "math pool starved: %v", counts)
}

func TestNextQuestionFallbackWhenNothingDue(t *testing.T) {
	driver := newFakeDriver()
	future := int64Ptr(time.Now().Add(48 * time.Hour).Unix())
	addQuestion(driver, "go", nil, future)
	// Mark every template as tried and not due.
	s := newTestService(t, driver, &fakeLLM{score: 4})
	for _, id := range allTemplateIDs() {
		driver.progress[id] = &store.TemplateProgress{
			TemplateType: id,
			EaseFactor:   srs.DefaultEaseFactor,
			NextReviewAt: future,
			TotalAttempts: 1,
		}
	}

	card, err := s.NextQuestion(context.Background(), "", "")
	require.NoError(t, err)
	assert.Contains(t, []string{TypeRegular, TypeMath}, card.QuestionType)
}

func TestNextQuestionNotFound(t *testing.T) {
	driver := newFakeDriver()
	s := newTestService(t, driver, &fakeLLM{score: 4})

	_, err := s.NextQuestion(context.Background(), "", "work")
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeNotFound))
}

func TestSubmitRegularAnswer(t *testing.T) {
	driver := newFakeDriver()
	q := addQuestion(driver, "go", nil, int64Ptr(time.Now().Add(-time.Hour).Unix()))
	s := newTestService(t, driver, &fakeLLM{score: 5})

	result, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeRegular,
		QuestionID:   q.ID,
		UserAnswer:   "it controls interval growth",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Score)
	assert.Equal(t, 5, *result.Score)
	assert.Equal(t, TypeRegular, result.QuestionType)

	updated := driver.questions[q.ID]
	assert.Equal(t, 1, updated.IntervalDays)
	assert.Equal(t, 1, updated.ReviewCount)
	assert.InDelta(t, 2.6, updated.EaseFactor, 0.001)
	require.NotNil(t, updated.NextReviewAt)
	assert.Greater(t, *updated.NextReviewAt, time.Now().Unix())

	require.Len(t, driver.reviews, 1)
	assert.Equal(t, q.ID, driver.reviews[0].QuestionID)
}

func TestSubmitRegularAnswerLLMFailure(t *testing.T) {
	driver := newFakeDriver()
	q := addQuestion(driver, "go", nil, int64Ptr(time.Now().Add(-time.Hour).Unix()))
	s := newTestService(t, driver, &fakeLLM{fail: true})

	result, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeRegular,
		QuestionID:   q.ID,
		UserAnswer:   "something",
	})
	require.NoError(t, err, "feedback failure must not block the schedule write")

	assert.Nil(t, result.Score)
	assert.Equal(t, placeholderFeedback, result.LLMFeedback)

	// Default score 3 still advances the schedule.
	updated := driver.questions[q.ID]
	assert.Equal(t, 1, updated.IntervalDays)
	assert.Equal(t, 1, updated.ReviewCount)
}

func TestSubmitRegularAnswerNotFound(t *testing.T) {
	s := newTestService(t, newFakeDriver(), &fakeLLM{score: 3})

	_, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeRegular,
		QuestionID:   99,
		UserAnswer:   "anything",
	})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeNotFound))
}

func TestSubmitMathAnswerCorrect(t *testing.T) {
	driver := newFakeDriver()
	driver.mathQuestions[1] = &store.MathQuestion{
		ID:            1,
		TemplateType:  "poisson_pmf",
		Topic:         "probability",
		CorrectAnswer: 0.125,
		DisplayText:   "a word problem",
	}
	driver.nextMathID = 1
	s := newTestService(t, driver, &fakeLLM{})

	result, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeMath,
		QuestionID:   1,
		UserAnswer:   "0.1251",
	})
	require.NoError(t, err)

	require.NotNil(t, result.IsCorrect)
	assert.True(t, *result.IsCorrect)
	require.NotNil(t, result.CorrectAnswer)
	assert.Equal(t, 0.125, *result.CorrectAnswer)

	progress := driver.progress["poisson_pmf"]
	require.NotNil(t, progress)
	assert.Equal(t, 1, progress.IntervalDays)
	assert.Equal(t, 1, progress.TotalAttempts)
	assert.Equal(t, 1, progress.CorrectAttempts)

	require.Len(t, driver.mathReviews, 1)
	assert.True(t, driver.mathReviews[0].IsCorrect)
}

func TestSubmitMathAnswerIncorrectResetsInterval(t *testing.T) {
	driver := newFakeDriver()
	driver.mathQuestions[1] = &store.MathQuestion{
		ID:            1,
		TemplateType:  "poisson_pmf",
		CorrectAnswer: 0.125,
	}
	driver.progress["poisson_pmf"] = &store.TemplateProgress{
		TemplateType:  "poisson_pmf",
		EaseFactor:    2.5,
		IntervalDays:  10,
		TotalAttempts: 4,
	}
	s := newTestService(t, driver, &fakeLLM{})

	result, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeMath,
		QuestionID:   1,
		UserAnswer:   "0.9",
	})
	require.NoError(t, err)
	assert.False(t, *result.IsCorrect)

	progress := driver.progress["poisson_pmf"]
	assert.Equal(t, 0, progress.IntervalDays)
	assert.Equal(t, 5, progress.TotalAttempts)
	assert.Equal(t, 0, progress.CorrectAttempts)
	require.NotNil(t, progress.NextReviewAt)
	// Failed items come back within minutes, not days.
	assert.Less(t, *progress.NextReviewAt, time.Now().Add(time.Hour).Unix())
}

func TestSubmitMathAnswerNonNumeric(t *testing.T) {
	s := newTestService(t, newFakeDriver(), &fakeLLM{})

	_, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeMath,
		QuestionID:   1,
		UserAnswer:   "about half",
	})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeInvalidInput))
}

func TestSubmitMathAnswerUnknownTemplate(t *testing.T) {
	driver := newFakeDriver()
	driver.mathQuestions[1] = &store.MathQuestion{
		ID:           1,
		TemplateType: "retired_template",
	}
	s := newTestService(t, driver, &fakeLLM{})

	_, err := s.SubmitAnswer(context.Background(), &SubmitRequest{
		QuestionType: TypeMath,
		QuestionID:   1,
		UserAnswer:   "1.0",
	})
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeUnknownTemplate))
}

func TestNextMathQuestionExplicitTemplate(t *testing.T) {
	driver := newFakeDriver()
	s := newTestService(t, driver, &fakeLLM{fail: true})

	question, err := s.NextMathQuestion(context.Background(), "", "poisson_pmf")
	require.NoError(t, err)

	assert.Equal(t, "poisson_pmf", question.TemplateType)
	assert.Equal(t, "probability", question.Topic)
	assert.NotEmpty(t, question.Params)
	// Word problem generation failed; the canned example stands in.
	assert.NotEmpty(t, question.DisplayText)

	stored := driver.mathQuestions[question.ID]
	require.NotNil(t, stored)
	assert.Equal(t, stored.DisplayText, question.DisplayText)
}

func TestNextMathQuestionUnknownTemplate(t *testing.T) {
	s := newTestService(t, newFakeDriver(), &fakeLLM{})

	_, err := s.NextMathQuestion(context.Background(), "", "no_such_template")
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.ErrCodeNotFound))
}

func TestNextMathQuestionPrefersDueTemplate(t *testing.T) {
	driver := newFakeDriver()
	past := int64Ptr(time.Now().Add(-time.Hour).Unix())
	future := int64Ptr(time.Now().Add(48 * time.Hour).Unix())
	for _, id := range allTemplateIDs() {
		next := future
		if id == "normal_cdf" {
			next = past
		}
		driver.progress[id] = &store.TemplateProgress{
			TemplateType:  id,
			EaseFactor:    srs.DefaultEaseFactor,
			NextReviewAt:  next,
			TotalAttempts: 1,
		}
	}
	s := newTestService(t, driver, &fakeLLM{})

	question, err := s.NextMathQuestion(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "normal_cdf", question.TemplateType)
}

func TestMathStats(t *testing.T) {
	driver := newFakeDriver()
	driver.progress["poisson_pmf"] = &store.TemplateProgress{
		TemplateType:    "poisson_pmf",
		EaseFactor:      2.6,
		IntervalDays:    3,
		NextReviewAt:    int64Ptr(time.Now().Add(-time.Hour).Unix()),
		TotalAttempts:   4,
		CorrectAttempts: 3,
	}
	s := newTestService(t, driver, &fakeLLM{})

	stats, err := s.MathStats(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, len(allTemplateIDs()), stats.Summary.TotalTemplates)
	assert.Equal(t, 4, stats.Summary.TotalAttempts)
	assert.InDelta(t, 0.75, stats.Summary.OverallAccuracy, 0.001)
	// The attempted-and-due template plus every untried one.
	assert.Equal(t, len(allTemplateIDs()), stats.Summary.TemplatesDue)

	var attempted *TemplateStat
	for i := range stats.Templates {
		if stats.Templates[i].TemplateType == "poisson_pmf" {
			attempted = &stats.Templates[i]
		}
	}
	require.NotNil(t, attempted)
	assert.InDelta(t, 0.75, attempted.Accuracy, 0.001)
	assert.True(t, attempted.IsDue)
}

func TestMathHistory(t *testing.T) {
	driver := newFakeDriver()
	driver.mathQuestions[1] = &store.MathQuestion{
		ID:            1,
		TemplateType:  "poisson_pmf",
		Topic:         "probability",
		CorrectAnswer: 0.2,
		DisplayText:   "a problem",
	}
	driver.mathReviews = append(driver.mathReviews, &store.MathReview{
		ID:             1,
		MathQuestionID: 1,
		UserAnswer:     0.21,
		IsCorrect:      true,
		LLMFeedback:    "close enough",
	})
	s := newTestService(t, driver, &fakeLLM{})

	history, err := s.MathHistory(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "a problem", history[0].Question)
	assert.Equal(t, 0.2, history[0].CorrectAnswer)
	assert.True(t, history[0].IsCorrect)
}

func TestStats(t *testing.T) {
	driver := newFakeDriver()
	addQuestion(driver, "go", []string{"work"}, int64Ptr(time.Now().Add(-time.Hour).Unix()))
	addQuestion(driver, "go", nil, nil)
	addQuestion(driver, "sql", nil, int64Ptr(time.Now().Add(48*time.Hour).Unix()))
	s := newTestService(t, driver, &fakeLLM{})

	stats, err := s.Stats(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalQuestions)
	assert.Equal(t, 2, stats.DueNow)

	workStats, err := s.Stats(context.Background(), "", "work")
	require.NoError(t, err)
	assert.Equal(t, 1, workStats.TotalQuestions)
}

func allTemplateIDs() []string {
	return []string{
		"binomial_cdf", "binomial_pmf", "compound_interest", "exponential_cdf",
		"exponential_survival", "future_value", "normal_cdf", "normal_zscore",
		"poisson_cdf", "poisson_pmf", "poisson_survival", "present_value",
	}
}
