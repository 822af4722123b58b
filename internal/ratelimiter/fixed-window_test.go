package ratelimiter

import (
	"testing"
	"time"
)

func TestFixedWindowLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewFixedWindowLimiter(2, 5*time.Second)
	rl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	now = now.Add(2 * time.Second)
	ok, retry := rl.Allow("1.2.3.4")
	if ok {
		t.Fatal("third request inside the window should be denied")
	}
	if retry != 3*time.Second {
		t.Fatalf("retry after = %v, want 3s", retry)
	}

	// other clients have their own window
	if ok, _ := rl.Allow("5.6.7.8"); !ok {
		t.Fatal("other client should be allowed")
	}

	now = now.Add(3 * time.Second)
	if ok, _ := rl.Allow("1.2.3.4"); !ok {
		t.Fatal("request after the window should be allowed")
	}
}

func TestFixedWindowLimiterSweepsExpiredClients(t *testing.T) {
	now := time.Now()
	rl := NewFixedWindowLimiter(1, time.Second)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")

	now = now.Add(2 * time.Second)
	rl.Allow("c")

	if len(rl.clients) != 1 {
		t.Fatalf("clients = %d, want only the fresh window", len(rl.clients))
	}
}
