package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("4th request in window must be rejected")
	}
	// other callers are unaffected
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("different ip must have its own window")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	base := time.Now()
	rl.now = func() time.Time { return base }

	if !rl.Allow("ip") {
		t.Fatalf("first request allowed")
	}
	if rl.Allow("ip") {
		t.Fatalf("second request in same window rejected")
	}

	rl.now = func() time.Time { return base.Add(time.Minute + time.Second) }
	if !rl.Allow("ip") {
		t.Fatalf("request in next window must be allowed")
	}
}
