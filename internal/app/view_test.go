package app_test

import (
	"strings"
	"testing"

	"quiz-progress-service/internal/app"
	"quiz-progress-service/internal/domain"
	"quiz-progress-service/internal/i18n"
	"quiz-progress-service/internal/locale"
)

func TestRenderViewEnglish(t *testing.T) {
	renderer := app.NewViewRenderer(locale.New(), i18n.Default(), domain.DefaultCommunityStats())
	stats := domain.AggregateStats{
		TotalScore:          10,
		TotalPossiblePoints: 12,
		CompletedCount:      2,
		TotalQuizCount:      2,
		AverageScore:        (4.0/5 + 6.0/7) / 2,
	}

	view := renderer.Render(stats, "en")
	if view.Score != "10" || view.Total != "12" || view.Completed != "2/2" {
		t.Fatalf("unexpected totals %+v", view)
	}
	if view.AverageScore != "82.9%" {
		t.Fatalf("expected 82.9%%, got %q", view.AverageScore)
	}
	if view.Progress != "83.3%" {
		t.Fatalf("expected 83.3%%, got %q", view.Progress)
	}
	if view.Community.AverageScore != "67.4%" || view.Community.RetryRate != "15.6%" {
		t.Fatalf("unexpected community percentages %+v", view.Community)
	}
	if view.Community.QuestionsAnswered != "100,000+" {
		t.Fatalf("expected 100,000+, got %q", view.Community.QuestionsAnswered)
	}
	if view.RightToLeft {
		t.Fatalf("english must be left to right")
	}
	if view.Labels["your-total"] != "Your total" || len(view.Labels) != len(app.LabelKeys) {
		t.Fatalf("unexpected labels %v", view.Labels)
	}
}

func TestRenderViewRightToLeft(t *testing.T) {
	renderer := app.NewViewRenderer(locale.New(), i18n.Default(), domain.DefaultCommunityStats())
	view := renderer.Render(domain.AggregateStats{TotalPossiblePoints: 50, TotalQuizCount: 11}, "ar")

	if !view.RightToLeft {
		t.Fatalf("arabic must be right to left")
	}
	if !strings.HasPrefix(view.Community.QuestionsAnswered, app.MoreThanIndicator) {
		t.Fatalf("expected leading indicator, got %q", view.Community.QuestionsAnswered)
	}
	if view.Completed != "0/11" || view.Score != "0" {
		t.Fatalf("unexpected zero progress view %+v", view)
	}
	if view.Labels["retry"] != "إعادة المحاولة" {
		t.Fatalf("expected arabic label, got %q", view.Labels["retry"])
	}
}
