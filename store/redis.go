package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Redis stores each collection under its key with no expiry
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, c Collection) ([]byte, error) {
	payload, err := r.client.Get(ctx, c.Key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", c.Key(), err)
	}
	return payload, nil
}

func (r *Redis) Set(ctx context.Context, c Collection, payload []byte) error {
	if err := r.client.Set(ctx, c.Key(), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.Key(), err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, c Collection) error {
	return r.client.Del(ctx, c.Key()).Err()
}

func (r *Redis) ClearAll(ctx context.Context) error {
	return r.client.Del(ctx, allKeys()...).Err()
}
