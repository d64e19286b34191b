// Package learn implements the review loop: picking the next item to show,
// grading submitted answers, updating the spaced repetition schedule and
// recording outcomes.
package learn

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/recallhq/recall/plugin/llm"
	"github.com/recallhq/recall/store"
)

// FeedbackGenerator is the LLM surface the review loop depends on.
// plugin/llm.Provider implements it; tests substitute a fake.
type FeedbackGenerator interface {
	ScoreAnswer(ctx context.Context, questionText, userAnswer string, answerText *string) (*llm.Feedback, error)
	RephraseQuestion(ctx context.Context, questionText string) (string, error)
	GenerateWordProblem(ctx context.Context, concept string, params map[string]float64, asksFor, example string) (string, error)
	MathFeedback(ctx context.Context, question, concept string, correctAnswer, userAnswer float64, isCorrect bool) (string, error)
}

// Config tunes the review loop.
type Config struct {
	// RephraseQuestions rewords fixed questions on delivery so the learner
	// recalls the concept instead of pattern-matching the exact phrasing.
	RephraseQuestions bool
	// LLMTimeout bounds every single call to the feedback generator.
	LLMTimeout time.Duration
	// MaxConcurrentLLMCalls bounds in-flight feedback generator calls.
	MaxConcurrentLLMCalls int64
}

// DefaultConfig returns the default review loop configuration.
func DefaultConfig() Config {
	return Config{
		RephraseQuestions:     true,
		LLMTimeout:            30 * time.Second,
		MaxConcurrentLLMCalls: 8,
	}
}

// Service orchestrates reviews over the store and the feedback generator.
type Service struct {
	store  *store.Store
	llm    FeedbackGenerator
	config Config

	// locks serializes the read-modify-write cycle per item/template
	// identity so concurrent submissions cannot lose schedule updates.
	locks *keyedMutex
	sem   *semaphore.Weighted

	rngMu sync.Mutex
	rng   *rand.Rand

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a review service.
func NewService(s *store.Store, generator FeedbackGenerator, config Config) *Service {
	if config.LLMTimeout == 0 {
		config.LLMTimeout = 30 * time.Second
	}
	if config.MaxConcurrentLLMCalls == 0 {
		config.MaxConcurrentLLMCalls = 8
	}

	return &Service{
		store:  s,
		llm:    generator,
		config: config,
		locks:  newKeyedMutex(),
		sem:    semaphore.NewWeighted(config.MaxConcurrentLLMCalls),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// withLLM runs one feedback generator call under the concurrency bound and
// timeout. Callers decide what a failure degrades to.
func (s *Service) withLLM(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, s.config.LLMTimeout)
	defer cancel()

	return fn(ctx)
}

func (s *Service) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *Service) pick(list []string) string {
	return list[s.intn(len(list))]
}

func (s *Service) sampleRand() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	// Derive a throwaway source so parameter sampling does not hold the
	// service lock for the whole generation.
	return rand.New(rand.NewSource(s.rng.Int63()))
}
