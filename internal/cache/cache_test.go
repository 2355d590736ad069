package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/voyageai/recommender/api/internal/config"
)

func TestSearchKey(t *testing.T) {
	a := SearchKey("Rome", []string{"Restaurants", " hotels "}, 3.5, 3000)
	b := SearchKey(" rome ", []string{"restaurants", "hotels"}, 3.5, 3000)
	if a != b {
		t.Fatalf("expected normalized keys to match: %q vs %q", a, b)
	}

	c := SearchKey("Rome", []string{"restaurants"}, 3.5, 3000)
	if a == c {
		t.Fatalf("expected different interests to produce different keys")
	}
	d := SearchKey("Rome", []string{"restaurants"}, 4.0, 3000)
	if c == d {
		t.Fatalf("expected different min rating to produce different keys")
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	if _, found := store.Get(ctx, "missing"); found {
		t.Fatalf("expected miss for unknown key")
	}

	store.Set(ctx, "k", []byte("payload"))
	data, found := store.Get(ctx, "k")
	if !found || string(data) != "payload" {
		t.Fatalf("expected hit with payload, got %q found=%v", data, found)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx := context.Background()
	store, err := NewRedisStore(ctx, config.RedisConfig{Address: mr.Addr()}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	if _, found := store.Get(ctx, "missing"); found {
		t.Fatalf("expected miss for unknown key")
	}

	store.Set(ctx, "k", []byte("payload"))
	data, found := store.Get(ctx, "k")
	if !found || string(data) != "payload" {
		t.Fatalf("expected hit with payload, got %q found=%v", data, found)
	}

	// value disappears once the TTL elapses
	mr.FastForward(2 * time.Minute)
	if _, found := store.Get(ctx, "k"); found {
		t.Fatalf("expected miss after ttl expiry")
	}
}

func TestRedisStoreConnectFailure(t *testing.T) {
	_, err := NewRedisStore(context.Background(), config.RedisConfig{Address: "127.0.0.1:1"}, time.Minute)
	if err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}
