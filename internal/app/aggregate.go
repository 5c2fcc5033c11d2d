package app

import (
	"quiz-progress-service/internal/catalog"
	"quiz-progress-service/internal/domain"
)

// Aggregate derives overall statistics from the catalog and a completion record.
//
// Entries for quizzes missing from the catalog are ignored. Entries that break
// the outcome invariant are skipped and returned as warnings. AverageScore is the
// mean of per-quiz fractions, so every completed quiz weighs the same regardless
// of its point value; it is 0 when nothing was counted.
func Aggregate(cat *catalog.Catalog, rec domain.CompletionRecord) (domain.AggregateStats, []*domain.DataIntegrityWarning) {
	stats := domain.AggregateStats{
		TotalQuizCount:      cat.Len(),
		TotalPossiblePoints: cat.TotalPossiblePoints(),
	}

	var (
		warnings    []*domain.DataIntegrityWarning
		fractionSum float64
	)
	for _, quiz := range cat.AllQuizzes() {
		outcome, ok := rec[quiz.ID]
		if !ok {
			continue
		}
		outcome.QuizID = quiz.ID
		if w := outcome.Check(); w != nil {
			warnings = append(warnings, w)
			stats.Rejected++
			continue
		}
		stats.CompletedCount++
		stats.TotalScore += outcome.Score
		fractionSum += outcome.Fraction()
	}

	if stats.CompletedCount > 0 {
		stats.AverageScore = fractionSum / float64(stats.CompletedCount)
	}
	return stats, warnings
}
