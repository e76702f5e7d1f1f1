//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func redisAddr() string {
	if addr := os.Getenv("POSTBOARD_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheIntegration(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisOptions{Addr: redisAddr()})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer c.Close()

	k := NewScopedKeyer(NewDefaultKeyer(), "postboard-test:")
	key := k.PlacementKey("itest", 0, PlacementKeyOpts{NotesHash: "n"})
	other := k.PlacementKey("itest", 1, PlacementKeyOpts{NotesHash: "n"})
	t.Cleanup(func() {
		_ = c.Delete(ctx, key)
		_ = c.Delete(ctx, other)
	})

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set = hit %v err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set(ctx, other, []byte("w"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = (%q, %v, %v)", data, hit, err)
	}

	n, err := c.DeletePrefix(ctx, k.PagePrefix("itest", 0))
	if err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}
	if n != 1 {
		t.Errorf("DeletePrefix removed %d keys, want 1", n)
	}
	if _, hit, _ := c.Get(ctx, other); !hit {
		t.Error("page 1 entry removed with page 0")
	}
}
