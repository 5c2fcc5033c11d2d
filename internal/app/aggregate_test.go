package app

import (
	"math"
	"testing"

	"quiz-progress-service/internal/catalog"
	"quiz-progress-service/internal/domain"
)

func twoQuizCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	questions := func(n int) []domain.Question {
		qs := make([]domain.Question, n)
		for i := range qs {
			qs[i] = domain.Question{ID: string(rune('a' + i))}
		}
		return qs
	}
	c, err := catalog.New([]domain.Quiz{
		{ID: "quizA", Questions: questions(5)},
		{ID: "quizB", Questions: questions(7)},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func TestAggregateEndToEndScenario(t *testing.T) {
	c := twoQuizCatalog(t)
	rec := domain.CompletionRecord{
		"quizA": {QuizID: "quizA", Score: 4, TotalQuestions: 5},
		"quizB": {QuizID: "quizB", Score: 6, TotalQuestions: 7},
	}

	stats, warnings := Aggregate(c, rec)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}
	if stats.TotalScore != 10 || stats.TotalPossiblePoints != 12 || stats.CompletedCount != 2 || stats.TotalQuizCount != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	want := (4.0/5 + 6.0/7) / 2
	if math.Abs(stats.AverageScore-want) > 1e-9 {
		t.Fatalf("expected average %v, got %v", want, stats.AverageScore)
	}
	if math.Abs(stats.AverageScore-0.829) > 0.001 {
		t.Fatalf("expected average near 0.829, got %v", stats.AverageScore)
	}
}

func TestAggregateEmptyRecord(t *testing.T) {
	for _, c := range []*catalog.Catalog{twoQuizCatalog(t), catalog.MustDefault()} {
		stats, _ := Aggregate(c, domain.CompletionRecord{})
		if stats.CompletedCount != 0 || stats.AverageScore != 0 || stats.TotalScore != 0 {
			t.Fatalf("expected zero progress, got %+v", stats)
		}
		if stats.TotalPossiblePoints != c.TotalPossiblePoints() {
			t.Fatalf("total possible points must come from the catalog")
		}
	}
}

func TestAggregateSkipsInvalidOutcomes(t *testing.T) {
	c := twoQuizCatalog(t)
	base := domain.CompletionRecord{"quizA": {QuizID: "quizA", Score: 4, TotalQuestions: 5}}
	baseline, _ := Aggregate(c, base)

	for _, bad := range []domain.QuizOutcome{
		{Score: 8, TotalQuestions: 7},
		{Score: 0, TotalQuestions: 0},
		{Score: -2, TotalQuestions: 7},
	} {
		rec := base.Clone()
		rec["quizB"] = bad
		stats, warnings := Aggregate(c, rec)
		if stats.TotalScore != baseline.TotalScore || stats.CompletedCount != baseline.CompletedCount {
			t.Fatalf("invalid outcome %+v changed stats: %+v", bad, stats)
		}
		if stats.AverageScore != baseline.AverageScore {
			t.Fatalf("invalid outcome %+v changed average", bad)
		}
		if len(warnings) != 1 || warnings[0].Outcome.QuizID != "quizB" || stats.Rejected != 1 {
			t.Fatalf("expected one warning for quizB, got %v (rejected=%d)", warnings, stats.Rejected)
		}
	}
}

func TestAggregateIgnoresUnknownQuizzes(t *testing.T) {
	c := twoQuizCatalog(t)
	rec := domain.CompletionRecord{
		"quizA":   {QuizID: "quizA", Score: 5, TotalQuestions: 5},
		"retired": {QuizID: "retired", Score: 3, TotalQuestions: 3},
	}
	stats, warnings := Aggregate(c, rec)
	if stats.CompletedCount != 1 || stats.TotalScore != 5 || stats.AverageScore != 1 || len(warnings) != 0 {
		t.Fatalf("unknown quiz leaked into stats: %+v", stats)
	}
}

func TestTotalPossiblePointsIndependentOfRecord(t *testing.T) {
	c := twoQuizCatalog(t)
	records := []domain.CompletionRecord{
		{},
		{"quizA": {QuizID: "quizA", Score: 1, TotalQuestions: 5}},
		{"quizA": {QuizID: "quizA", Score: 5, TotalQuestions: 5}, "quizB": {QuizID: "quizB", Score: 0, TotalQuestions: 7}},
	}
	for _, rec := range records {
		stats, _ := Aggregate(c, rec)
		if stats.TotalPossiblePoints != 12 {
			t.Fatalf("expected 12 possible points, got %d", stats.TotalPossiblePoints)
		}
		if stats.CompletedCount > stats.TotalQuizCount || stats.TotalScore > stats.TotalPossiblePoints {
			t.Fatalf("invariant violated: %+v", stats)
		}
	}
}
