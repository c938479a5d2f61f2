package cache

import (
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// item is a stored value with its expiry deadline.
type item struct {
	value     any
	expiresAt time.Time
}

// Memory is a concurrency-safe in-memory key/value cache with per-entry TTL.
// Expired entries are dropped lazily on access and swept periodically in the
// background so abandoned keys do not accumulate.
type Memory struct {
	mu    sync.RWMutex
	items map[string]item

	hits   int
	misses int

	scheduler *gocron.Scheduler
}

// New creates a Memory cache. sweepInterval controls how often expired
// entries are purged; <= 0 disables the background sweep.
func New(sweepInterval time.Duration) *Memory {
	m := &Memory{
		items: make(map[string]item),
	}

	if sweepInterval > 0 {
		s := gocron.NewScheduler(time.UTC)
		if _, err := s.Every(sweepInterval).Do(m.sweep); err != nil {
			log.Printf("cache: failed to schedule sweep: %v", err)
		} else {
			s.StartAsync()
			m.scheduler = s
		}
	}

	return m
}

// Get returns the value stored under key, if present and not expired.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(it.expiresAt) {
		m.mu.Lock()
		m.misses++
		// Re-check under the write lock: another goroutine may have refreshed
		// the key since the read above, and a fresh entry must not be dropped.
		if cur, still := m.items[key]; still && time.Now().After(cur.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false
	}

	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
	return it.value, true
}

// Set stores value under key for ttl. A ttl <= 0 stores nothing.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = item{value: value, expiresAt: time.Now().Add(ttl)}
}

// Exists reports whether key holds an unexpired entry. It does not count
// toward hit/miss statistics.
func (m *Memory) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.items[key]
	return ok && time.Now().Before(it.expiresAt)
}

// Stats returns the number of cache hits and misses so far.
func (m *Memory) Stats() (hits, misses int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses
}

// Stop halts the background sweep.
func (m *Memory) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

func (m *Memory) sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, it := range m.items {
		if now.After(it.expiresAt) {
			delete(m.items, key)
		}
	}
}
