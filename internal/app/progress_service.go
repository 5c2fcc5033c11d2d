package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"quiz-progress-service/internal/catalog"
	"quiz-progress-service/internal/domain"
	"quiz-progress-service/internal/record"
)

// RecordStore abstracts where serialized completion records live (memory, SQLite, Redis, Postgres).
type RecordStore interface {
	// Read returns the raw record and whether one exists.
	Read(ctx context.Context, userID string) (string, bool, error)
	Write(ctx context.Context, userID, raw string) error
}

// ProgressService contains the progress and statistics use cases.
type ProgressService struct {
	catalog *catalog.Catalog
	store   RecordStore
	logger  *slog.Logger
	hub     *Hub
	sf      singleflight.Group
	locks   userLocks
}

type Option func(*ProgressService)

// WithHub shares an update hub between services.
func WithHub(hub *Hub) Option {
	return func(s *ProgressService) {
		if hub != nil {
			s.hub = hub
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *ProgressService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewProgressService(cat *catalog.Catalog, store RecordStore, opts ...Option) *ProgressService {
	s := &ProgressService{
		catalog: cat,
		store:   store,
		logger:  slog.Default(),
		hub:     NewHub(),
		locks:   userLocks{held: make(map[string]*userLock)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProgressService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Record returns a private copy of the user's completion record. A malformed
// stored record is logged and reported as empty.
func (s *ProgressService) Record(ctx context.Context, userID string) (domain.CompletionRecord, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	// Concurrent readers of the same user share one store round trip.
	result, err, _ := s.sf.Do(userID, func() (interface{}, error) {
		return s.load(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.(domain.CompletionRecord).Clone(), nil
}

// Stats aggregates the user's progress. Store failures never block rendering:
// they are logged and the user is shown zero progress.
func (s *ProgressService) Stats(ctx context.Context, userID string) domain.AggregateStats {
	rec, err := s.Record(ctx, userID)
	if err != nil {
		s.logger.Error("load completion record failed", "user", userID, "error", err)
		rec = domain.CompletionRecord{}
	}
	return s.aggregate(userID, rec)
}

// ShareStats is the score pair used for share messages.
func (s *ProgressService) ShareStats(ctx context.Context, userID string) domain.ShareStats {
	stats := s.Stats(ctx, userID)
	return domain.ShareStats{Score: stats.TotalScore, Total: stats.TotalPossiblePoints}
}

// CompleteQuiz records an outcome, replacing any earlier completion of the same
// quiz, and returns the updated statistics.
func (s *ProgressService) CompleteQuiz(ctx context.Context, userID string, outcome domain.QuizOutcome) (domain.AggregateStats, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.AggregateStats{}, domain.ErrUserRequired
	}
	if !s.catalog.Contains(outcome.QuizID) {
		return domain.AggregateStats{}, fmt.Errorf("%w: %s", domain.ErrQuizNotFound, outcome.QuizID)
	}
	if err := outcome.Validate(); err != nil {
		return domain.AggregateStats{}, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	rec, err := s.load(ctx, userID)
	if err != nil {
		return domain.AggregateStats{}, err
	}
	rec.Put(outcome)

	raw, err := record.Encode(rec)
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("encode completion record: %w", err)
	}
	if err := s.store.Write(ctx, userID, raw); err != nil {
		return domain.AggregateStats{}, fmt.Errorf("write completion record: %w", err)
	}
	s.sf.Forget(userID)

	s.logger.Info("quiz completed", "user", userID, "quiz", outcome.QuizID,
		"score", outcome.Score, "totalQuestions", outcome.TotalQuestions)
	stats := s.aggregate(userID, rec)
	s.hub.Publish(userID, stats)
	return stats, nil
}

// Subscribe streams the user's statistics after every completion.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *ProgressService) Subscribe(userID string) (<-chan domain.AggregateStats, func()) {
	return s.hub.Subscribe(strings.TrimSpace(userID))
}

func (s *ProgressService) load(ctx context.Context, userID string) (domain.CompletionRecord, error) {
	raw, ok, err := s.store.Read(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read completion record: %w", err)
	}
	if !ok {
		return domain.CompletionRecord{}, nil
	}
	rec, err := record.Decode(raw)
	if err != nil {
		s.logger.Warn("completion record unreadable, treating as no progress", "user", userID, "error", err)
	}
	return rec, nil
}

func (s *ProgressService) aggregate(userID string, rec domain.CompletionRecord) domain.AggregateStats {
	stats, warnings := Aggregate(s.catalog, rec)
	for _, w := range warnings {
		s.logger.Warn("skipping quiz outcome", "user", userID, "quiz", w.Outcome.QuizID,
			"score", w.Outcome.Score, "totalQuestions", w.Outcome.TotalQuestions, "reason", w.Reason)
	}
	return stats
}

// userLocks serializes read-modify-write cycles per user within this process.
type userLocks struct {
	mu   sync.Mutex
	held map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	ul, ok := l.held[userID]
	if !ok {
		ul = &userLock{}
		l.held[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.held, userID)
		}
		l.mu.Unlock()
	}
}
