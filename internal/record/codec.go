package record

import (
	"encoding/json"
	"errors"
	"strings"

	"quiz-progress-service/internal/domain"
)

// entry is the persisted form of one outcome; the quiz id is the map key.
type entry struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

// Decode parses a persisted completion record. An empty or "null" value decodes
// to an empty record; anything unparsable yields a *domain.MalformedRecordError.
// The returned record is never nil, so callers that degrade to "no progress yet"
// can keep using it after logging the error.
func Decode(raw string) (domain.CompletionRecord, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return domain.CompletionRecord{}, nil
	}

	var entries map[string]*entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return domain.CompletionRecord{}, &domain.MalformedRecordError{Err: err}
	}

	rec := make(domain.CompletionRecord, len(entries))
	for quizID, e := range entries {
		if quizID == "" {
			return domain.CompletionRecord{}, &domain.MalformedRecordError{Err: errors.New("empty quiz id")}
		}
		if e == nil {
			return domain.CompletionRecord{}, &domain.MalformedRecordError{Err: errors.New("null outcome for quiz " + quizID)}
		}
		rec[quizID] = domain.QuizOutcome{
			QuizID:         quizID,
			Score:          e.Score,
			TotalQuestions: e.TotalQuestions,
		}
	}
	return rec, nil
}

// Encode serializes rec with keys in sorted order.
func Encode(rec domain.CompletionRecord) (string, error) {
	entries := make(map[string]entry, len(rec))
	for quizID, o := range rec {
		if quizID == "" {
			return "", errors.New("encode completion record: empty quiz id")
		}
		entries[quizID] = entry{Score: o.Score, TotalQuestions: o.TotalQuestions}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
