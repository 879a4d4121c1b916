package store

// Package store provides persisted auth record stores. Each store holds at
// most one serialized record.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

const defaultRedisPrefix = "cheddaboards:auth:"

// RedisStore is a Redis-backed auth store for server-side embeddings, where
// the game runs next to a Redis instance and the auth record should survive
// process restarts. The record is scoped by an embedder-chosen slot key, the
// analog of a browser tab's storage scope.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	slot   string
	ttl    time.Duration
}

// NewRedisStore creates a Redis auth store for the given slot. A zero ttl
// means the record does not expire.
func NewRedisStore(client redis.UniversalClient, slot string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
		slot:   slot,
		ttl:    ttl,
	}
}

// NewRedisStoreWithPrefix creates a Redis auth store with a custom key prefix.
func NewRedisStoreWithPrefix(client redis.UniversalClient, prefix, slot string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		slot:   slot,
		ttl:    ttl,
	}
}

func (s *RedisStore) key() string { return s.prefix + s.slot }

func (s *RedisStore) Save(ctx context.Context, rec auth.AuthRecord) error {
	if s.slot == "" {
		return errors.New("store slot cannot be empty")
	}

	data, err := auth.EncodeRecord(rec)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.key(), data, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context) (auth.AuthRecord, error) {
	data, err := s.client.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.AuthRecord{}, ports.ErrNoRecord
		}
		return auth.AuthRecord{}, fmt.Errorf("redis get: %w", err)
	}

	return auth.DecodeRecord([]byte(data))
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}
