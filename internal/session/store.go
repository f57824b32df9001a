package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

// Store persists encoded sessions by token.
type Store interface {
	Get(ctx context.Context, token string) ([]byte, error)
	Set(ctx context.Context, token string, data []byte) error
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps each session under <prefix>:<token> with a TTL.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

func (s *RedisStore) Get(ctx context.Context, token string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *RedisStore) Set(ctx context.Context, token string, data []byte) error {
	return s.client.Set(ctx, s.key(token), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
