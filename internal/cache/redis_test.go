package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/catalog"
	"restaurant-storefront/internal/models"
)

// fakeRedis implements the commands the cache uses over a map
type fakeRedis struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	raw, ok := value.([]byte)
	if !ok {
		return redis.NewStatusResult("", errors.New("unexpected value type"))
	}
	f.values[key] = string(raw)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestGenerateKey(t *testing.T) {
	c := NewCatalogCache(nil, "storefront", time.Minute)
	if got := c.GenerateKey("snapshot"); got != "storefront:catalog:snapshot" {
		t.Fatalf("GenerateKey() = %q", got)
	}
}

func TestCatalogCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := NewCatalogCache(rdb, "storefront", 10*time.Minute)

	snap, err := c.Load(ctx)
	if err != nil || snap != nil {
		t.Fatalf("Load() on empty cache = %v, %v; want nil, nil", snap, err)
	}

	want := &catalog.Snapshot{
		Categories: []models.Category{{ID: "grills", Name: "Grills", OrderIndex: 1}},
		Items: []models.MenuItem{
			{ID: "1", CategoryID: "grills", DisplayID: "1.1", Name: "Grilled Chicken", Price: decimal.RequireFromString("30.5"), IsAvailable: true},
		},
		FetchedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := c.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ttl := rdb.ttls["storefront:catalog:snapshot"]; ttl != 10*time.Minute {
		t.Errorf("ttl = %v, want 10m", ttl)
	}

	got, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil || len(got.Items) != 1 || got.Items[0].DisplayID != "1.1" ||
		!got.Items[0].Price.Equal(want.Items[0].Price) || !got.FetchedAt.Equal(want.FetchedAt) {
		t.Fatalf("Load() = %+v", got)
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if snap, _ := c.Load(ctx); snap != nil {
		t.Error("snapshot still cached after Invalidate")
	}
}

func TestCatalogCacheErrors(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := NewCatalogCache(rdb, "storefront", time.Minute)

	rdb.values[c.GenerateKey(snapshotKey)] = "{not json"
	if _, err := c.Load(ctx); err == nil {
		t.Error("expected decode error for a corrupt entry")
	}

	rdb.err = errors.New("connection refused")
	if _, err := c.Load(ctx); err == nil {
		t.Error("expected Load() to surface the client error")
	}
	if err := c.Save(ctx, &catalog.Snapshot{}); err == nil {
		t.Error("expected Save() to surface the client error")
	}
}
