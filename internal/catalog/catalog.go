package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"quiz-progress-service/internal/domain"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the fixed, ordered list of quizzes a user can complete.
// It is validated once on construction and never mutated afterwards.
type Catalog struct {
	quizzes     []domain.Quiz
	index       map[string]int
	totalPoints int
}

type document struct {
	Quizzes []domain.Quiz `yaml:"quizzes"`
}

// New validates quizzes and precomputes the total possible points.
func New(quizzes []domain.Quiz) (*Catalog, error) {
	if len(quizzes) == 0 {
		return nil, &domain.ConfigurationError{Reason: "quiz catalog is empty"}
	}

	c := &Catalog{
		quizzes: make([]domain.Quiz, 0, len(quizzes)),
		index:   make(map[string]int, len(quizzes)),
	}
	for i, quiz := range quizzes {
		id := strings.TrimSpace(quiz.ID)
		if id == "" {
			return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("quiz #%d has no id", i)}
		}
		if _, dup := c.index[id]; dup {
			return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("duplicate quiz id %q", id)}
		}
		if len(quiz.Questions) == 0 {
			return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("quiz %q has no questions", id)}
		}
		for _, q := range quiz.Questions {
			if q.Points < 0 {
				return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("quiz %q question %q has negative points", id, q.ID)}
			}
		}

		quiz.ID = id
		quiz.Questions = append([]domain.Question(nil), quiz.Questions...)
		c.index[id] = len(c.quizzes)
		c.quizzes = append(c.quizzes, quiz)
		c.totalPoints += quiz.Points()
	}
	return c, nil
}

// Parse builds a catalog from a YAML document with a top-level "quizzes" list.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ConfigurationError{Reason: "parse catalog: " + err.Error()}
	}
	return New(doc.Quizzes)
}

// Load reads a YAML catalog from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Reason: "read catalog: " + err.Error()}
	}
	return Parse(data)
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// MustDefault is Default for callers that cannot start without a catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// AllQuizzes returns the quizzes in catalog order.
func (c *Catalog) AllQuizzes() []domain.Quiz {
	out := make([]domain.Quiz, len(c.quizzes))
	copy(out, c.quizzes)
	return out
}

// TotalPossiblePoints is the sum of every question's points across the catalog.
func (c *Catalog) TotalPossiblePoints() int {
	return c.totalPoints
}

func (c *Catalog) Len() int {
	return len(c.quizzes)
}

func (c *Catalog) Contains(quizID string) bool {
	_, ok := c.index[quizID]
	return ok
}

// Quiz looks up a quiz by id.
func (c *Catalog) Quiz(quizID string) (domain.Quiz, error) {
	i, ok := c.index[quizID]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return c.quizzes[i], nil
}

// Sections groups quiz ids by section, preserving first-seen section order.
func (c *Catalog) Sections() []Section {
	var sections []Section
	pos := make(map[string]int)
	for _, quiz := range c.quizzes {
		i, ok := pos[quiz.Section]
		if !ok {
			i = len(sections)
			pos[quiz.Section] = i
			sections = append(sections, Section{Name: quiz.Section})
		}
		sections[i].QuizIDs = append(sections[i].QuizIDs, quiz.ID)
	}
	return sections
}

// Section is a named group of quizzes.
type Section struct {
	Name    string   `json:"name"`
	QuizIDs []string `json:"quizIds"`
}
