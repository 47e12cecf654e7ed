// Package cache wires Redis in as shared storage for the rate
// limiter. Without Redis the limiter falls back to fiber's in-memory
// counters, which is the documented single-instance behavior.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// HealthCheck verifies the connection before the server starts
// routing limiter traffic through it.
func HealthCheck(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Storage adapts go-redis to fiber.Storage so limiter counters are
// shared across server instances.
type Storage struct {
	client *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), key, val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

func (s *Storage) Reset() error {
	return s.client.FlushDB(context.Background()).Err()
}

func (s *Storage) Close() error {
	return s.client.Close()
}
