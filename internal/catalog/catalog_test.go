package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quiz-progress-service/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if c.Len() != 11 {
		t.Fatalf("expected 11 quizzes, got %d", c.Len())
	}
	if c.TotalPossiblePoints() != 50 {
		t.Fatalf("expected 50 points, got %d", c.TotalPossiblePoints())
	}
	sections := c.Sections()
	if len(sections) != 2 || sections[0].Name != "ethereum-basics" || len(sections[1].QuizIDs) != 6 {
		t.Fatalf("unexpected sections %+v", sections)
	}
	if !c.Contains("merge") || c.Contains("unknown") {
		t.Fatalf("unexpected Contains result")
	}
}

func TestTotalPossiblePointsUsesQuestionWeights(t *testing.T) {
	c, err := New([]domain.Quiz{
		{ID: "a", Questions: []domain.Question{{ID: "q1"}, {ID: "q2", Points: 3}}},
		{ID: "b", Questions: []domain.Question{{ID: "q3", Points: 2}}},
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.TotalPossiblePoints() != 6 {
		t.Fatalf("expected 6 points, got %d", c.TotalPossiblePoints())
	}
	quiz, err := c.Quiz("a")
	if err != nil || quiz.Points() != 4 {
		t.Fatalf("expected quiz a worth 4, got %d (%v)", quiz.Points(), err)
	}
	if _, err := c.Quiz("zzz"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestNewRejectsMalformedCatalogs(t *testing.T) {
	cases := map[string][]domain.Quiz{
		"empty":        nil,
		"blank id":     {{ID: " ", Questions: []domain.Question{{ID: "q"}}}},
		"no questions": {{ID: "a"}},
		"duplicate": {
			{ID: "a", Questions: []domain.Question{{ID: "q"}}},
			{ID: "a", Questions: []domain.Question{{ID: "q"}}},
		},
		"negative points": {{ID: "a", Questions: []domain.Question{{ID: "q", Points: -1}}}},
	}
	for name, quizzes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(quizzes)
			var cfgErr *domain.ConfigurationError
			if !errors.As(err, &cfgErr) || !errors.Is(err, domain.ErrInvalidConfig) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestAllQuizzesReturnsCopy(t *testing.T) {
	c := MustDefault()
	quizzes := c.AllQuizzes()
	quizzes[0].ID = "mutated"
	if c.AllQuizzes()[0].ID != "what-is-ethereum" {
		t.Fatalf("catalog mutated through AllQuizzes")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "quizzes:\n  - id: solo\n    questions:\n      - id: q1\n        points: 5\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TotalPossiblePoints() != 5 {
		t.Fatalf("expected 5 points, got %d", c.TotalPossiblePoints())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}
}
