package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheSetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := LayoutKey("sheet", "policy", "window")

	if _, ok, _ := c.Get(ctx, key); ok {
		t.Fatal("Get() before Set should miss")
	}

	want := []byte(`{"rows":[]}`)
	if err := c.Set(ctx, key, want, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v, want hit", ok, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %s, want %s", got, want)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() after TTL should miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() after Delete should miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("NullCache should always miss")
	}
}

func TestLayoutKeyDeterministic(t *testing.T) {
	type in struct{ A, B int }

	k1 := LayoutKey(in{1, 2}, "p", "w")
	k2 := LayoutKey(in{1, 2}, "p", "w")
	k3 := LayoutKey(in{1, 3}, "p", "w")

	if k1 != k2 {
		t.Errorf("equal inputs produced different keys: %s vs %s", k1, k2)
	}
	if k1 == k3 {
		t.Error("different inputs produced the same key")
	}
	if len(k1) != len("layout:")+64 {
		t.Errorf("key %q has unexpected shape", k1)
	}
}
