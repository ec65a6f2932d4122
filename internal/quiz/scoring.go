// Package quiz scores timed quiz answers and tracks an in-flight attempt.
package quiz

import (
	"math"

	"learnplatform/internal/domain"
)

// Score awards the question's points plus a bonus that decays linearly from
// 100% at zero seconds to nothing at the time limit. Wrong or missing
// answers score zero.
func Score(q domain.QuizQuestion, answer *int, timeSpent float64) float64 {
	if answer == nil || *answer != q.CorrectAnswer {
		return 0
	}
	limit := float64(q.TimeLimit)
	if limit <= 0 {
		limit = domain.DefaultTimeLimit
	}
	bonus := math.Max(0, 1-timeSpent/limit)
	return float64(q.Points) * (1 + bonus)
}

// Total sums the scores of a graded section.
func Total(results []domain.QuizResult) float64 {
	var sum float64
	for _, r := range results {
		sum += r.Score
	}
	return sum
}
