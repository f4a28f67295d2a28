package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 3 {
		t.Errorf("expected default burst 3 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://api.congress.gov/v3/bill"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different host has its own bucket.
	if err := limiter.Wait(ctx, "https://api.regulations.gov/v4/documents"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_PerHostBuckets(t *testing.T) {
	limiter := NewLimiter(1, 1)

	url := "https://api.congress.gov/v3/bill"
	if !limiter.Allow(url) {
		t.Errorf("first request should be allowed")
	}
	if limiter.Allow(url) {
		t.Errorf("expected token exhaustion on the same host")
	}
	if !limiter.Allow("https://api.govinfo.gov/collections") {
		t.Errorf("other hosts should be unaffected")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(1000, 10)
	limiter.SetHostRate("slow.example.gov", 1, 1)

	url := "https://slow.example.gov/api"
	if !limiter.Allow(url) {
		t.Errorf("first request should be allowed")
	}
	if limiter.Allow(url) {
		t.Errorf("host override should enforce burst 1")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(1000, 10)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.WaitWithDelay(ctx, "https://api.congress.gov", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}
}

func TestLimiter_WaitWithDelayCancelled(t *testing.T) {
	limiter := NewLimiter(1000, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.WaitWithDelay(ctx, "https://api.congress.gov", time.Minute); err == nil {
		t.Error("expected context error")
	}
}
