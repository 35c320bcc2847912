// Package redis caches computed indicator frames so repeated chart
// loads for the same ticker skip recomputation. The cache is strictly
// optional: every failure path degrades to "compute again".
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// CacheConfig configures the frame cache.
type CacheConfig struct {
	Addr     string // Redis address, e.g. "localhost:6379"
	Password string
	DB       int
}

// Cache stores computed frame payloads keyed by ticker. Payloads are
// opaque JSON: storing the marshaled bytes untouched keeps the per-field
// null/number distinction intact on the way back out.
type Cache struct {
	client *goredis.Client
}

// Client returns the underlying Redis client for health checks.
func (c *Cache) Client() *goredis.Client { return c.client }

// New creates a new frame cache and pings the server.
func New(cfg CacheConfig) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Printf("[redis] connected to %s", cfg.Addr)
	return &Cache{client: client}, nil
}

func frameKey(ticker string) string {
	return "frames:" + ticker
}

// GetFrames returns the cached JSON payload for a ticker, or nil on miss.
func (c *Cache) GetFrames(ctx context.Context, ticker string) ([]byte, error) {
	data, err := c.client.Get(ctx, frameKey(ticker)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", frameKey(ticker), err)
	}
	return data, nil
}

// SetFrames stores a JSON payload for a ticker with the given TTL.
func (c *Cache) SetFrames(ctx context.Context, ticker string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, frameKey(ticker), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", frameKey(ticker), err)
	}
	return nil
}

// Invalidate drops the cached payload for a ticker. Called whenever new
// history lands so the next read recomputes.
func (c *Cache) Invalidate(ctx context.Context, ticker string) error {
	if err := c.client.Del(ctx, frameKey(ticker)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", frameKey(ticker), err)
	}
	return nil
}

// Close closes the cache connection.
func (c *Cache) Close() error {
	return c.client.Close()
}
