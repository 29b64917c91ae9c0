package ratelimit

import (
	"testing"
	"time"
)

func TestAllowEnforcesPerClientLimit(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 3, CleanupInterval: time.Minute})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("203.0.113.9") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("203.0.113.9") {
		t.Error("request over the limit should be rejected")
	}

	// Another client has its own budget.
	if !rl.Allow("198.51.100.1") {
		t.Error("independent client should be allowed")
	}
}

func TestActiveClients(t *testing.T) {
	rl := NewLimiter(DefaultConfig())
	defer rl.Stop()

	if got := rl.ActiveClients(); got != 0 {
		t.Fatalf("expected no tracked clients, got %d", got)
	}
	rl.Allow("203.0.113.9")
	rl.Allow("198.51.100.1")
	if got := rl.ActiveClients(); got != 2 {
		t.Errorf("expected 2 tracked clients, got %d", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewLimiter(DefaultConfig())
	rl.Stop()
	rl.Stop()
}
