package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "jwt:revoked"

// redisStore keeps one key per token and lets Redis expire them
type redisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a Redis-backed blacklist store. The client stays owned
// by the caller; Close does not close it.
func NewRedisStore(client redis.UniversalClient, prefix string) Store {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &redisStore{redis: client, prefix: prefix}
}

func (s *redisStore) key(tokenID string) string {
	return s.prefix + ":" + tokenID
}

func (s *redisStore) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, s.key(tokenID), expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisStore) Contains(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := s.redis.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

func (s *redisStore) Remove(ctx context.Context, tokenID string) error {
	if err := s.redis.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Cleanup is a no-op: Redis expires the keys itself
func (s *redisStore) Cleanup(context.Context) (int, error) {
	return 0, nil
}

// Size scans the store's keys. It is O(n) and meant for diagnostics.
func (s *redisStore) Size(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)

	for {
		keys, next, err := s.redis.Scan(ctx, cursor, s.prefix+":*", 1000).Result()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return total, nil
}

func (s *redisStore) Close() error {
	return nil
}
