package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a JSON value under "<prefix>:<id>" with
// the session lifetime as TTL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	bs, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(bs, &sess); err != nil {
		// A corrupt entry is treated as a fresh visit.
		return nil, nil
	}
	sess.ID = id
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	bs, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), bs, ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
