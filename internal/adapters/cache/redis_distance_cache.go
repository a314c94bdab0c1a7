package cache

import (
	"context"
	"errors"
	"fmt"
	"ride-assignment-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const distanceKeyPrefix = "distance:"

// RedisDistanceStore keeps routed distances in Redis with an optional TTL,
// for deployments that share one cache across several service instances.
type RedisDistanceStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisDistanceStore stores entries for ttl; zero keeps them forever.
func NewRedisDistanceStore(client *redis.Client, ttl time.Duration) *RedisDistanceStore {
	return &RedisDistanceStore{redis: client, ttl: ttl}
}

func distanceKey(from, to domain.Coordinates) string {
	return distanceKeyPrefix + cellKey(from) + ":" + cellKey(to)
}

func (s *RedisDistanceStore) GetDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (float64, bool, error) {
	km, err := s.redis.Get(ctx, distanceKey(from, to)).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance store: %w", err)
	}
	return km, true, nil
}

func (s *RedisDistanceStore) PutDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	km float64,
) error {
	if err := s.redis.Set(ctx, distanceKey(from, to), km, s.ttl).Err(); err != nil {
		return fmt.Errorf("insert distance store %s -> %s: %w", from, to, err)
	}
	return nil
}
