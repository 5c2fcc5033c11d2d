package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecordStore keeps each user's serialized completion record under
// quiz:progress:{userID}. A zero TTL keeps records forever; otherwise every
// write refreshes the expiry.
type RecordStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecordStore(client *redis.Client, ttl time.Duration) *RecordStore {
	return &RecordStore{client: client, ttl: ttl}
}

func (s *RecordStore) Read(ctx context.Context, userID string) (string, bool, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (s *RecordStore) Write(ctx context.Context, userID, raw string) error {
	return s.client.Set(ctx, s.key(userID), raw, s.ttl).Err()
}

func (s *RecordStore) Delete(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *RecordStore) key(userID string) string {
	return "quiz:progress:" + userID
}
