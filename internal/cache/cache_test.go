package cache

import (
	"sync"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	m := New(0)

	m.Set("k", "value", time.Minute)

	v, ok := m.Get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if v.(string) != "value" {
		t.Fatalf("expected %q, got %v", "value", v)
	}
}

func TestExpiry(t *testing.T) {
	m := New(0)

	m.Set("k", 1, 10*time.Millisecond)
	if !m.Exists("k") {
		t.Fatal("expected key to exist before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if m.Exists("k") {
		t.Fatal("expected key to expire")
	}
	if _, ok := m.Get("k"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestZeroTTLStoresNothing(t *testing.T) {
	m := New(0)

	m.Set("k", 1, 0)
	if m.Exists("k") {
		t.Fatal("expected zero TTL to store nothing")
	}
}

func TestStats(t *testing.T) {
	m := New(0)

	m.Set("k", 1, time.Minute)
	m.Get("k")
	m.Get("k")
	m.Get("absent")

	hits, misses := m.Stats()
	if hits != 2 {
		t.Fatalf("expected 2 hits, got %d", hits)
	}
	if misses != 1 {
		t.Fatalf("expected 1 miss, got %d", misses)
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	m := New(0)

	m.Set("old", 1, 10*time.Millisecond)
	m.Set("fresh", 2, time.Minute)

	time.Sleep(20 * time.Millisecond)
	m.sweep()

	m.mu.RLock()
	_, oldOK := m.items["old"]
	_, freshOK := m.items["fresh"]
	m.mu.RUnlock()

	if oldOK {
		t.Fatal("expected expired entry to be swept")
	}
	if !freshOK {
		t.Fatal("expected fresh entry to survive the sweep")
	}
}

func TestGetKeepsConcurrentlyRefreshedEntry(t *testing.T) {
	m := New(0)

	for i := 0; i < 200; i++ {
		m.mu.Lock()
		m.items["k"] = item{value: "stale", expiresAt: time.Now().Add(-time.Minute)}
		m.mu.Unlock()

		// A Get of the expired entry races a Set that refreshes it. The Get
		// must never drop the refreshed entry.
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Get("k")
		}()
		go func() {
			defer wg.Done()
			m.Set("k", "fresh", time.Minute)
		}()
		wg.Wait()

		if v, ok := m.Get("k"); !ok || v.(string) != "fresh" {
			t.Fatalf("refreshed entry was dropped on round %d", i)
		}
	}
}
