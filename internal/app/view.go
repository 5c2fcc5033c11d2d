package app

import (
	"strconv"

	"quiz-progress-service/internal/domain"
	"quiz-progress-service/internal/i18n"
)

// MoreThanIndicator marks the community question count as a lower bound.
const MoreThanIndicator = "+"

// LabelKeys are the translation keys a stats view carries.
var LabelKeys = []string{
	"your-total",
	"share-results",
	"average-score",
	"completed",
	"community-stats",
	"questions-answered",
	"retry",
}

// NumberFormatter renders numbers for a display language.
type NumberFormatter interface {
	FormatPercent(v float64, lang string) string
	MoreThan(v float64, indicator, lang string) string
	IsRightToLeft(lang string) bool
}

// Translations hands out a translator bound to a language.
type Translations interface {
	For(lang string) i18n.Translator
}

// StatsView is the display-ready form of a user's statistics.
type StatsView struct {
	Language     string                `json:"language"`
	RightToLeft  bool                  `json:"rightToLeft"`
	Score        string                `json:"score"`
	Total        string                `json:"total"`
	Progress     string                `json:"progress"`
	AverageScore string                `json:"averageScore"`
	Completed    string                `json:"completed"`
	Community    CommunityView         `json:"community"`
	Labels       map[string]string     `json:"labels"`
	Stats        domain.AggregateStats `json:"stats"`
}

// CommunityView holds the formatted collective figures.
type CommunityView struct {
	AverageScore      string `json:"averageScore"`
	QuestionsAnswered string `json:"questionsAnswered"`
	RetryRate         string `json:"retryRate"`
}

// ViewRenderer formats statistics next to the community figures.
type ViewRenderer struct {
	numbers      NumberFormatter
	translations Translations
	community    domain.CommunityStats
}

func NewViewRenderer(numbers NumberFormatter, translations Translations, community domain.CommunityStats) *ViewRenderer {
	return &ViewRenderer{numbers: numbers, translations: translations, community: community}
}

func (r *ViewRenderer) Render(stats domain.AggregateStats, lang string) StatsView {
	tr := r.translations.For(lang)
	labels := make(map[string]string, len(LabelKeys))
	for _, key := range LabelKeys {
		labels[key] = tr.Translate(key)
	}

	progress := 0.0
	if stats.TotalPossiblePoints > 0 {
		progress = float64(stats.TotalScore) / float64(stats.TotalPossiblePoints)
	}

	return StatsView{
		Language:     lang,
		RightToLeft:  r.numbers.IsRightToLeft(lang),
		Score:        strconv.Itoa(stats.TotalScore),
		Total:        strconv.Itoa(stats.TotalPossiblePoints),
		Progress:     r.numbers.FormatPercent(progress, lang),
		AverageScore: r.numbers.FormatPercent(stats.AverageScore, lang),
		Completed:    strconv.Itoa(stats.CompletedCount) + "/" + strconv.Itoa(stats.TotalQuizCount),
		Community: CommunityView{
			AverageScore:      r.numbers.FormatPercent(r.community.AverageScore, lang),
			QuestionsAnswered: r.numbers.MoreThan(float64(r.community.QuestionsAnswered), MoreThanIndicator, lang),
			RetryRate:         r.numbers.FormatPercent(r.community.RetryRate, lang),
		},
		Labels: labels,
		Stats:  stats,
	}
}
