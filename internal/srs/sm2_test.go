package srs

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestUpdateFailedScoresResetInterval(t *testing.T) {
	for _, score := range []int{1, 2} {
		for _, interval := range []int{0, 1, 10, 365} {
			result := Update(score, 2.5, interval, 8, testNow)

			if result.IntervalDays != 0 {
				t.Errorf("Update(score=%d, interval=%d): IntervalDays = %d, want 0", score, interval, result.IntervalDays)
			}
			want := testNow.Add(FailedRetryDelay)
			if !result.NextReviewAt.Equal(want) {
				t.Errorf("Update(score=%d, interval=%d): NextReviewAt = %v, want %v", score, interval, result.NextReviewAt, want)
			}
		}
	}
}

func TestUpdateEaseNeverBelowFloor(t *testing.T) {
	ease := DefaultEaseFactor
	for i := 0; i < 50; i++ {
		result := Update(1, ease, 0, i, testNow)
		if result.EaseFactor < MinEaseFactor {
			t.Fatalf("after %d failures: EaseFactor = %f, below floor %f", i+1, result.EaseFactor, MinEaseFactor)
		}
		ease = result.EaseFactor
	}
	if ease != MinEaseFactor {
		t.Errorf("ease after many failures = %f, want pinned at %f", ease, MinEaseFactor)
	}
}

func TestUpdateFirstSuccess(t *testing.T) {
	result := Update(4, DefaultEaseFactor, 0, 0, testNow)

	if result.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1 for first success", result.IntervalDays)
	}
	if !result.NextReviewAt.Equal(testNow.AddDate(0, 0, 1)) {
		t.Errorf("NextReviewAt = %v, want one day ahead", result.NextReviewAt)
	}
}

func TestUpdateSecondSuccess(t *testing.T) {
	result := Update(3, DefaultEaseFactor, 1, 1, testNow)

	if result.IntervalDays != 3 {
		t.Errorf("IntervalDays = %d, want 3 for second success", result.IntervalDays)
	}
}

func TestUpdateMultiplicativeGrowth(t *testing.T) {
	result := Update(5, 2.5, 10, 5, testNow)

	// Score 5 raises the ease by 0.1.
	if result.EaseFactor <= 2.5 {
		t.Errorf("EaseFactor = %f, want increase above 2.5", result.EaseFactor)
	}
	want := int(math.Round(10 * result.EaseFactor))
	if result.IntervalDays != want {
		t.Errorf("IntervalDays = %d, want round(10 * %f) = %d", result.IntervalDays, result.EaseFactor, want)
	}
}

func TestUpdateIntervalCap(t *testing.T) {
	result := Update(5, 2.5, 300, 10, testNow)

	if result.IntervalDays != MaxIntervalDays {
		t.Errorf("IntervalDays = %d, want capped at %d", result.IntervalDays, MaxIntervalDays)
	}
}

func TestUpdateClampsOutOfRangeScores(t *testing.T) {
	low := Update(-3, 2.5, 10, 5, testNow)
	if low.IntervalDays != 0 {
		t.Errorf("score below range should behave like 1, got interval %d", low.IntervalDays)
	}

	high := Update(99, 2.5, 10, 5, testNow)
	ref := Update(5, 2.5, 10, 5, testNow)
	if high != ref {
		t.Errorf("score above range should behave like 5: got %+v, want %+v", high, ref)
	}
}

func TestUpdateEaseRounding(t *testing.T) {
	result := Update(4, 2.5, 10, 5, testNow)

	rounded := math.Round(result.EaseFactor*100) / 100
	if result.EaseFactor != rounded {
		t.Errorf("EaseFactor = %v, want rounded to 2 decimals", result.EaseFactor)
	}
}

func TestUpdateBinaryMapping(t *testing.T) {
	correct := UpdateBinary(true, 2.5, 10, 5, testNow)
	if want := Update(4, 2.5, 10, 5, testNow); correct != want {
		t.Errorf("UpdateBinary(true) = %+v, want score-4 result %+v", correct, want)
	}

	incorrect := UpdateBinary(false, 2.5, 10, 5, testNow)
	if want := Update(2, 2.5, 10, 5, testNow); incorrect != want {
		t.Errorf("UpdateBinary(false) = %+v, want score-2 result %+v", incorrect, want)
	}
}
