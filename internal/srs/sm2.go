// Package srs implements the SM-2 spaced repetition scheduling algorithm,
// adjusted for a 1-5 scoring scale.
//
// The algorithm determines when an item should be shown next (interval) and
// how "easy" the item is (ease factor). Score 4-5 grows the interval, score 3
// is normal progression, and score 1-2 resets the interval so the item comes
// back within minutes.
package srs

import (
	"math"
	"time"
)

const (
	// DefaultEaseFactor is the initial ease factor for new items.
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the floor below which the ease factor never drops.
	// Without it, failed items become impossible to escape.
	MinEaseFactor = 1.3
	// MaxIntervalDays caps the review interval at one year.
	MaxIntervalDays = 365
	// FailedRetryDelay is how soon a failed item (interval 0) comes back.
	FailedRetryDelay = 10 * time.Minute
)

// Result is the scheduling state produced by a review.
type Result struct {
	EaseFactor   float64
	IntervalDays int
	NextReviewAt time.Time
}

// Update calculates the next review parameters from a 1-5 score.
//
// Out-of-range scores are clamped, not rejected. attempts is the number of
// completed reviews before this one. The function is pure given now.
func Update(score int, ease float64, intervalDays int, attempts int, now time.Time) Result {
	score = clampScore(score)

	// EF' = EF + (0.1 - (5 - q) * (0.08 + (5 - q) * 0.02))
	q := float64(score)
	newEase := ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEase < MinEaseFactor {
		newEase = MinEaseFactor
	}

	var newInterval int
	switch {
	case score < 3:
		// Failed, reset to the beginning.
		newInterval = 0
	case attempts == 0 || intervalDays == 0:
		// First successful review.
		newInterval = 1
	case intervalDays == 1:
		// Second successful review.
		newInterval = 3
	default:
		newInterval = int(math.Round(float64(intervalDays) * newEase))
	}

	if newInterval > MaxIntervalDays {
		newInterval = MaxIntervalDays
	}

	var nextReview time.Time
	if newInterval == 0 {
		nextReview = now.Add(FailedRetryDelay)
	} else {
		nextReview = now.AddDate(0, 0, newInterval)
	}

	return Result{
		EaseFactor:   math.Round(newEase*100) / 100,
		IntervalDays: newInterval,
		NextReviewAt: nextReview,
	}
}

// UpdateBinary calculates the next review for binary correct/incorrect
// outcomes, mapping correct to score 4 and incorrect to score 2. Math
// templates use this: their questions carry randomized numbers, so the
// mapping is slightly forgiving in both directions.
func UpdateBinary(isCorrect bool, ease float64, intervalDays int, attempts int, now time.Time) Result {
	score := 2
	if isCorrect {
		score = 4
	}
	return Update(score, ease, intervalDays, attempts, now)
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}
