package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightorders/config"
	"github.com/Domenick1991/flightorders/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps short-lived seat-map snapshots so the seat listing
// endpoint does not hit the inventory on every poll. Entries are invalidated
// whenever an order touches the flight, so the TTL is only a backstop.
type RedisCache struct {
	client     *redis.Client
	seatMapTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, seatMapTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		seatMapTTL: seatMapTTL,
	}
}

func (c *RedisCache) GetSeatMap(ctx context.Context, flightID string) ([]domain.Seat, error) {
	data, err := c.client.Get(ctx, seatMapKey(flightID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var seats []domain.Seat
	if err := json.Unmarshal(data, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

func (c *RedisCache) SetSeatMap(ctx context.Context, flightID string, seats []domain.Seat) error {
	payload, err := json.Marshal(seats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, seatMapKey(flightID), payload, c.seatMapTTL).Err()
}

func (c *RedisCache) InvalidateSeatMap(ctx context.Context, flightID string) error {
	return c.client.Del(ctx, seatMapKey(flightID)).Err()
}

func seatMapKey(flightID string) string {
	return fmt.Sprintf("cache:flight:%s:seats", flightID)
}
