package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-storefront/internal/catalog"
)

const snapshotKey = "snapshot"

// CatalogCache stores the organized menu snapshot in Redis
type CatalogCache struct {
	client      redis.Cmdable
	serviceName string
	ttl         time.Duration
}

func NewCatalogCache(client redis.Cmdable, serviceName string, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// GenerateKey builds "<service>:catalog:<name>"
func (c *CatalogCache) GenerateKey(name string) string {
	return fmt.Sprintf("%s:catalog:%s", c.serviceName, name)
}

// Load returns the cached snapshot, or nil on a miss
func (c *CatalogCache) Load(ctx context.Context) (*catalog.Snapshot, error) {
	raw, err := c.client.Get(ctx, c.GenerateKey(snapshotKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}
	return &snap, nil
}

func (c *CatalogCache) Save(ctx context.Context, snap *catalog.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return c.client.Set(ctx, c.GenerateKey(snapshotKey), raw, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.GenerateKey(snapshotKey)).Err()
}
