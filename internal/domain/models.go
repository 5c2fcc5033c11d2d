package domain

// Question is a single catalog question worth a fixed number of points.
type Question struct {
	ID     string `json:"id" yaml:"id"`
	Points int    `json:"points,omitempty" yaml:"points,omitempty"` // defaults to 1 if zero
}

// EffectivePoints returns the point value with the zero default applied.
func (q Question) EffectivePoints() int {
	if q.Points == 0 {
		return 1
	}
	return q.Points
}

// Quiz is an immutable catalog entry.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Section   string     `json:"section,omitempty" yaml:"section,omitempty"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Points sums the effective points of every question in the quiz.
func (q Quiz) Points() int {
	total := 0
	for _, question := range q.Questions {
		total += question.EffectivePoints()
	}
	return total
}

// QuizOutcome is what a user scored the last time they finished a quiz.
type QuizOutcome struct {
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

// Check reports the first invariant violation, or nil when the outcome is well formed:
// 0 <= Score <= TotalQuestions and TotalQuestions > 0.
func (o QuizOutcome) Check() *DataIntegrityWarning {
	switch {
	case o.TotalQuestions <= 0:
		return &DataIntegrityWarning{Outcome: o, Reason: "total questions must be positive"}
	case o.Score < 0:
		return &DataIntegrityWarning{Outcome: o, Reason: "score must not be negative"}
	case o.Score > o.TotalQuestions:
		return &DataIntegrityWarning{Outcome: o, Reason: "score exceeds total questions"}
	}
	return nil
}

// Validate is Check as a plain error.
func (o QuizOutcome) Validate() error {
	if w := o.Check(); w != nil {
		return w
	}
	return nil
}

// Fraction is Score/TotalQuestions. Callers must validate first.
func (o QuizOutcome) Fraction() float64 {
	return float64(o.Score) / float64(o.TotalQuestions)
}

// CompletionRecord maps quiz ids to the latest outcome for that quiz.
type CompletionRecord map[string]QuizOutcome

// Put stores the outcome, replacing any earlier completion of the same quiz.
func (r CompletionRecord) Put(o QuizOutcome) {
	r[o.QuizID] = o
}

// Clone returns an independent copy of the record.
func (r CompletionRecord) Clone() CompletionRecord {
	out := make(CompletionRecord, len(r))
	for id, o := range r {
		out[id] = o
	}
	return out
}

// AggregateStats is derived from the catalog and a completion record on every read.
type AggregateStats struct {
	TotalScore          int     `json:"totalScore"`
	TotalPossiblePoints int     `json:"totalPossiblePoints"`
	CompletedCount      int     `json:"completedCount"`
	TotalQuizCount      int     `json:"totalQuizCount"`
	AverageScore        float64 `json:"averageScore"`
	Rejected            int     `json:"rejected"`
}

// ShareStats is the score pair embedded in a share message.
type ShareStats struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// CommunityStats are collective figures maintained outside this service.
type CommunityStats struct {
	QuestionsAnswered int     `json:"questionsAnswered" yaml:"questionsAnswered"`
	AverageScore      float64 `json:"averageScore" yaml:"averageScore"`
	RetryRate         float64 `json:"retryRate" yaml:"retryRate"`
}

// DefaultCommunityStats holds the last published collective figures.
func DefaultCommunityStats() CommunityStats {
	return CommunityStats{
		QuestionsAnswered: 100000,
		AverageScore:      67.4 / 100,
		RetryRate:         15.6 / 100,
	}
}
