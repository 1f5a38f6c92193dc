package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Raghu4002/railway-reservation/config"
	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	trainsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, trainsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		trainsTTL: trainsTTL,
	}
}

func (c *RedisCache) GetTrains(ctx context.Context) ([]domain.Train, error) {
	data, err := c.client.Get(ctx, trainsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var trains []domain.Train
	if err := json.Unmarshal(data, &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

func (c *RedisCache) SetTrains(ctx context.Context, trains []domain.Train) error {
	payload, err := json.Marshal(trains)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trainsKey(), payload, c.trainsTTL).Err()
}

// InvalidateTrains drops the cached train list. Called after any schedule
// mutation and after booking traffic changes seat counts, so stale
// availability never outlives the TTL.
func (c *RedisCache) InvalidateTrains(ctx context.Context) error {
	return c.client.Del(ctx, trainsKey()).Err()
}

func trainsKey() string {
	return "cache:trains"
}
