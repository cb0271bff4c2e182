package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

// TestInMemoryCache_GetSet verifies that Set stores a payload and Get returns
// it byte-identical within the TTL.
func TestInMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	val := json.RawMessage(`{"city":"Mumbai","temperature":28}`)
	if err := c.Set(ctx, "city:Mumbai", val, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "city:Mumbai")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if !bytes.Equal(got, val) {
		t.Errorf("Get() = %s, want %s", got, val)
	}
}

// TestInMemoryCache_Get_Miss verifies that Get returns ok=false for a key
// that was never stored.
func TestInMemoryCache_Get_Miss(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	_, ok, err := c.Get(ctx, "forecast:nowhere")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true, want false for miss")
	}
}

// TestInMemoryCache_Get_Expired verifies that advancing the injected clock
// past the TTL makes the entry absent and removes it from the map.
func TestInMemoryCache_Get_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewInMemoryCacheWithClock(func() time.Time { return now })

	val := json.RawMessage(`{"city":"Paris"}`)
	if err := c.Set(ctx, "city:Paris", val, 10*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// One second short of the TTL: still served.
	now = now.Add(10*time.Minute - time.Second)
	if _, ok, _ := c.Get(ctx, "city:Paris"); !ok {
		t.Fatal("Get() ok = false just inside TTL, want true")
	}

	// At exactly the TTL the entry is treated as absent.
	now = now.Add(time.Second)
	if _, ok, _ := c.Get(ctx, "city:Paris"); ok {
		t.Error("Get() ok = true at TTL boundary, want false")
	}

	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired read, want 0", c.Len())
	}
}

// TestInMemoryCache_Set_Replaces verifies last-write-wins replacement of
// whole entries for the same key.
func TestInMemoryCache_Set_Replaces(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	_ = c.Set(ctx, "k", json.RawMessage(`{"v":1}`), time.Minute)
	_ = c.Set(ctx, "k", json.RawMessage(`{"v":2}`), time.Minute)

	got, ok, _ := c.Get(ctx, "k")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Get() = %s, want the second write", got)
	}
}

// TestInMemoryCache_ConcurrentAccess exercises parallel readers and writers
// on the same key under the race detector.
func TestInMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "shared", json.RawMessage(`{"v":1}`), time.Millisecond)
				_, _, _ = c.Get(ctx, "shared")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
