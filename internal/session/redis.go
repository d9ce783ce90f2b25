package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invoicecreator/invoice-creator/internal/config"
	"github.com/invoicecreator/invoice-creator/internal/observability"
)

// RedisStore keeps each session in one Redis hash. Every read or write
// pushes the hash expiry out by ttl.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "invoice:sess"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisClient builds the client shared by the session store and the
// redis health probe.
func NewRedisClient(cfg *config.Config) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Username:    cfg.RedisUsername,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: cfg.RedisDialTimeout,
	})
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	hashKey := s.hashKey(sessionID)
	var get *redis.StringCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGet(ctx, hashKey, key)
		pipe.Expire(ctx, hashKey, s.ttl)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		observability.RecordSessionStoreOperation(ctx, "redis", "get", "error")
		return nil, false, fmt.Errorf("redis session get: %w", err)
	}
	value, err := get.Bytes()
	if errors.Is(err, redis.Nil) {
		observability.RecordSessionStoreOperation(ctx, "redis", "get", "miss")
		return nil, false, nil
	}
	if err != nil {
		observability.RecordSessionStoreOperation(ctx, "redis", "get", "error")
		return nil, false, fmt.Errorf("redis session get: %w", err)
	}
	observability.RecordSessionStoreOperation(ctx, "redis", "get", "success")
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	hashKey := s.hashKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey, key, value)
		pipe.Expire(ctx, hashKey, s.ttl)
		return nil
	})
	observability.RecordSessionStoreOperation(ctx, "redis", "set", observability.StatusFromError(err))
	if err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

func (s *RedisStore) Unset(ctx context.Context, sessionID, key string) error {
	err := s.client.HDel(ctx, s.hashKey(sessionID), key).Err()
	observability.RecordSessionStoreOperation(ctx, "redis", "unset", observability.StatusFromError(err))
	if err != nil {
		return fmt.Errorf("redis session unset: %w", err)
	}
	return nil
}

func (s *RedisStore) hashKey(sessionID string) string {
	return s.prefix + ":" + sessionID
}
