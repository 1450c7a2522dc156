package memory

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q, want %q", got, "v")
	}
}

func TestCacheMissReturnsNil(t *testing.T) {
	c := NewCache()

	got, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil on miss, got %q", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired entry to miss, got %q", got)
	}
}

func TestCacheDelete(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), time.Minute)
	c.Set(ctx, "b", []byte("2"), time.Minute)

	if err := c.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache, size=%d", c.Size())
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewCache()
	ctx := context.Background()

	c.Set(ctx, "old", []byte("1"), time.Nanosecond)
	c.Set(ctx, "fresh", []byte("2"), time.Hour)
	time.Sleep(5 * time.Millisecond)

	if removed := c.CleanExpired(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if c.Size() != 1 {
		t.Errorf("size = %d, want 1", c.Size())
	}
}
