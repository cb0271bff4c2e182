package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
)

// TestMemcachedCache_Integration round-trips a payload through a real
// memcached instance. Skipped unless MEMCACHED_ADDRS is set.
func TestMemcachedCache_Integration(t *testing.T) {
	addrs := os.Getenv("MEMCACHED_ADDRS")
	if addrs == "" {
		t.Skip("MEMCACHED_ADDRS not set; skipping memcached integration test")
	}

	c, err := NewMemcachedCache(addrs, time.Second, 2)
	if err != nil {
		t.Fatalf("NewMemcachedCache() error = %v", err)
	}
	defer c.Close()

	if err := c.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	ctx := context.Background()
	val := json.RawMessage(`{"city":"Mumbai","temperature":28}`)
	if err := c.Set(ctx, "it:city:Mumbai", val, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "it:city:Mumbai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if !bytes.Equal(got, val) {
		t.Errorf("Get() = %s, want %s", got, val)
	}

	if _, ok, _ := c.Get(ctx, "it:absent"); ok {
		t.Error("Get() ok = true for absent key, want false")
	}
}
