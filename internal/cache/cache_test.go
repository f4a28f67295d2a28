package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("https://api.congress.gov/v3/bill/117")
	k2 := Key("https://api.congress.gov/v3/bill/118")

	if k1 == k2 {
		t.Error("different URLs must map to different keys")
	}
	if k1 != Key("https://api.congress.gov/v3/bill/117") {
		t.Error("keys must be deterministic")
	}
	if len(k1) == 0 || k1[:len("insightsgpt:v1:")] != "insightsgpt:v1:" {
		t.Errorf("key missing namespace prefix: %q", k1)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("https://example.gov/a")

	if _, ok := c.Get(key); ok {
		t.Fatal("empty cache should miss")
	}

	if err := c.Set(key, []byte("body"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get(key)
	if !ok || string(got) != "body" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("deleted entry should miss")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("https://example.gov/b")

	if err := c.Set(key, []byte("body"), time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("expired entry should miss")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("https://example.gov/c")

	if err := c.Set(key, []byte(`{"cached":true}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get(key)
	if !ok || string(got) != `{"cached":true}` {
		t.Fatalf("Get = %q, %v", got, ok)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("https://example.gov/d")

	if err := c.Set(key, []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("entry with elapsed TTL should miss")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	key := Key("https://example.gov/e")

	// Seed the disk layer directly, then read through a fresh layered
	// cache: the hit should come from disk and land in memory.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set(key, []byte("persisted"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Minute)
	got, ok := layered.Get(key)
	if !ok || string(got) != "persisted" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	if got, ok := layered.memory.Get(key); !ok || string(got) != "persisted" {
		t.Error("disk hit was not promoted to the memory layer")
	}
}
