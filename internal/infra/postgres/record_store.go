package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// RecordStore keeps completion records in the completion_records table.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

func (s *RecordStore) Read(ctx context.Context, userID string) (string, bool, error) {
	var raw string
	err := s.pool.QueryRow(ctx, `SELECT data FROM completion_records WHERE user_id=$1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load completion record: %w", err)
	}
	return raw, true, nil
}

func (s *RecordStore) Write(ctx context.Context, userID, raw string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO completion_records (user_id, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("save completion record: %w", err)
	}
	return nil
}

func (s *RecordStore) Delete(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM completion_records WHERE user_id=$1`, userID)
	return err
}
