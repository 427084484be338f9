package quotestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/velamo/remitroute/internal/model"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func quoteKey(id string) string {
	return "quote:" + id
}

func executedKey(id string) string {
	return "quote:" + id + ":executed"
}

func (s *RedisStore) Save(ctx context.Context, q *model.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	ttl := time.Until(q.ExpiresAt) + retention
	if err := s.client.Set(ctx, quoteKey(q.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save quote: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*model.Quote, error) {
	payload, err := s.client.Get(ctx, quoteKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	var q model.Quote
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("unmarshal quote: %w", err)
	}
	return &q, nil
}

// ClaimExecution is an atomic conditional claim: SETNX succeeds for exactly
// one caller per quote id.
func (s *RedisStore) ClaimExecution(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, executedKey(id), "1", retention).Result()
	if err != nil {
		return false, fmt.Errorf("claim execution: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) ReleaseExecution(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, executedKey(id)).Err(); err != nil {
		return fmt.Errorf("release execution: %w", err)
	}
	return nil
}
