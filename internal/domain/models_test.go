package domain

import (
	"errors"
	"testing"
)

func TestQuizOutcomeValidate(t *testing.T) {
	valid := []QuizOutcome{
		{QuizID: "a", Score: 0, TotalQuestions: 1},
		{QuizID: "a", Score: 5, TotalQuestions: 5},
	}
	for _, o := range valid {
		if err := o.Validate(); err != nil {
			t.Fatalf("expected %+v to be valid, got %v", o, err)
		}
	}

	invalid := []QuizOutcome{
		{QuizID: "a", Score: 6, TotalQuestions: 5},
		{QuizID: "a", Score: 0, TotalQuestions: 0},
		{QuizID: "a", Score: -1, TotalQuestions: 3},
	}
	for _, o := range invalid {
		err := o.Validate()
		if !errors.Is(err, ErrInvalidOutcome) {
			t.Fatalf("expected invalid outcome for %+v, got %v", o, err)
		}
	}
}

func TestCompletionRecordPutReplaces(t *testing.T) {
	rec := CompletionRecord{}
	rec.Put(QuizOutcome{QuizID: "a", Score: 1, TotalQuestions: 5})
	rec.Put(QuizOutcome{QuizID: "a", Score: 4, TotalQuestions: 5})
	if len(rec) != 1 || rec["a"].Score != 4 {
		t.Fatalf("expected single replaced entry, got %+v", rec)
	}

	clone := rec.Clone()
	clone.Put(QuizOutcome{QuizID: "b", Score: 1, TotalQuestions: 1})
	if len(rec) != 1 {
		t.Fatalf("clone shares storage with original")
	}
}

func TestQuestionDefaultPoints(t *testing.T) {
	q := Quiz{Questions: []Question{{ID: "1"}, {ID: "2", Points: 4}}}
	if q.Points() != 5 {
		t.Fatalf("expected 5 points, got %d", q.Points())
	}
}
