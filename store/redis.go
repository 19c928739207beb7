package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

func weightsKey(key string) string { return "weights:" + key }

// Redis keeps each key's weights in one hash, field per feature.
type Redis struct {
	rdb *redis.Client
}

// OpenRedis connects with a redis:// URL.
func OpenRedis(redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) ReadWeights(ctx context.Context, key string) (map[string]float64, error) {
	fields, err := r.rdb.HGetAll(ctx, weightsKey(key)).Result()
	if err == redis.Nil || (err == nil && len(fields) == 0) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get weights %q: %w", key, err)
	}
	w := make(map[string]float64, len(fields))
	for feature, raw := range fields {
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q/%q: %w", key, feature, err)
		}
		w[feature] = x
	}
	return w, nil
}

func (r *Redis) WriteWeights(ctx context.Context, key string, weights map[string]float64) error {
	values := make([]any, 0, 2*len(weights))
	for feature, x := range weights {
		values = append(values, feature, strconv.FormatFloat(x, 'g', -1, 64))
	}
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, weightsKey(key))
		if len(values) > 0 {
			pipe.HSet(ctx, weightsKey(key), values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set weights %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
