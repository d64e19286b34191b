package mathgen

import "math"

// GradeResult is the verdict for a submitted numeric answer.
type GradeResult struct {
	IsCorrect  bool
	Difference float64
}

// Grade compares a numeric answer against the expected one with tolerance
// for floating point. Near zero (|correct| < 1e-4) the relative error is
// undefined, so only the absolute difference counts. Everywhere else either
// the relative error or the absolute difference passing under the tolerance
// is enough; the OR keeps grading lenient for both large and small
// magnitudes. Grade never fails: non-numeric input must be rejected by the
// caller before this point.
func Grade(userAnswer, correctAnswer, tolerance float64) GradeResult {
	diff := math.Abs(userAnswer - correctAnswer)

	var isCorrect bool
	if math.Abs(correctAnswer) < 1e-4 {
		isCorrect = diff < tolerance
	} else {
		relativeError := diff / math.Abs(correctAnswer)
		isCorrect = relativeError < tolerance || diff < tolerance
	}

	return GradeResult{
		IsCorrect:  isCorrect,
		Difference: diff,
	}
}
