package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS completion_records (
    user_id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    updated_at_unix INTEGER NOT NULL
);
`

// RecordStore keeps completion records in a local SQLite file.
type RecordStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewRecordStore(path string) (*RecordStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "progress.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &RecordStore{db: db, now: time.Now}, nil
}

func (s *RecordStore) Read(ctx context.Context, userID string) (string, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM completion_records WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (s *RecordStore) Write(ctx context.Context, userID, raw string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completion_records (user_id, data, updated_at_unix) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at_unix = excluded.updated_at_unix`,
		userID, raw, s.now().Unix())
	return err
}

func (s *RecordStore) Delete(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM completion_records WHERE user_id = ?`, userID)
	return err
}

func (s *RecordStore) Close() error {
	return s.db.Close()
}
