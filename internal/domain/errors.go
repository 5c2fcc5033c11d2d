package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates an outcome references a quiz outside the catalog.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrUserRequired is returned when a progress operation has no user id.
	ErrUserRequired = errors.New("user id required")
	// ErrInvalidOutcome is matched by every DataIntegrityWarning.
	ErrInvalidOutcome = errors.New("invalid quiz outcome")
	// ErrMalformedRecord is matched by every MalformedRecordError.
	ErrMalformedRecord = errors.New("malformed completion record")
	// ErrInvalidConfig is matched by every ConfigurationError.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MalformedRecordError reports a persisted completion record that could not be parsed.
// Callers treat it as "no progress yet".
type MalformedRecordError struct {
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed completion record: %v", e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// DataIntegrityWarning reports a single outcome that violates its invariant.
type DataIntegrityWarning struct {
	Outcome QuizOutcome
	Reason  string
}

func (w *DataIntegrityWarning) Error() string {
	return fmt.Sprintf("quiz %q: %s (score=%d totalQuestions=%d)",
		w.Outcome.QuizID, w.Reason, w.Outcome.Score, w.Outcome.TotalQuestions)
}

func (w *DataIntegrityWarning) Is(target error) bool { return target == ErrInvalidOutcome }

// ConfigurationError is fatal and surfaces at startup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrInvalidConfig }
