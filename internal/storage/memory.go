package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var _ Backend = (*MemoryBackend)(nil)

const memoryCleanupInterval = time.Minute

type expiringEntry struct {
	entry
	expiresAt time.Time
}

// MemoryBackend serves a single instance when REDIS_URL is unset.
type MemoryBackend struct {
	limiters  map[string]*rate.Limiter
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int

	sessions map[string]expiringEntry
	resets   map[string]expiringEntry
	mu       sync.Mutex

	now  func() time.Time
	done chan struct{}
}

func NewMemoryBackend(ratePerSec float64, burst int) *MemoryBackend {
	return newMemoryBackend(ratePerSec, burst, time.Now)
}

func newMemoryBackend(ratePerSec float64, burst int, now func() time.Time) *MemoryBackend {
	m := &MemoryBackend{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: max(burst, 1),
		sessions:  make(map[string]expiringEntry),
		resets:    make(map[string]expiringEntry),
		now:       now,
		done:      make(chan struct{}),
	}

	go m.cleanupLoop()

	return m
}

func (m *MemoryBackend) Allow(_ context.Context, key string) (RateLimitResult, error) {
	limiter := m.limiter(key)

	now := m.now()
	r := limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return RateLimitResult{Allowed: false, RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryBackend) limiter(key string) *rate.Limiter {
	m.limiterMu.RLock()
	limiter, exists := m.limiters[key]
	m.limiterMu.RUnlock()

	if exists {
		return limiter
	}

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()

	if limiter, exists = m.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(m.rateLimit, m.rateBurst)
	m.limiters[key] = limiter
	return limiter
}

func (m *MemoryBackend) CreateSession(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	m.put(m.sessions, tokenHash, userID, ttl)
	return nil
}

func (m *MemoryBackend) GetSession(_ context.Context, tokenHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[tokenHash]
	if !ok || !m.now().Before(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.UserID, nil
}

func (m *MemoryBackend) DeleteSession(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	delete(m.sessions, tokenHash)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) DeleteUserSessions(_ context.Context, userID string) error {
	m.mu.Lock()
	for key, e := range m.sessions {
		if e.UserID == userID {
			delete(m.sessions, key)
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) SetResetToken(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	m.put(m.resets, tokenHash, userID, ttl)
	return nil
}

func (m *MemoryBackend) ConsumeResetToken(_ context.Context, tokenHash string) (string, error) {
	m.mu.Lock()
	e, ok := m.resets[tokenHash]
	if ok {
		delete(m.resets, tokenHash)
	}
	m.mu.Unlock()

	if !ok || !m.now().Before(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.UserID, nil
}

func (m *MemoryBackend) put(into map[string]expiringEntry, key, userID string, ttl time.Duration) {
	now := m.now()
	m.mu.Lock()
	into[key] = expiringEntry{
		entry:     entry{UserID: userID, CreatedAt: now},
		expiresAt: now.Add(ttl),
	}
	m.mu.Unlock()
}

func (m *MemoryBackend) Close() error {
	close(m.done)
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryBackend) cleanupLoop() {
	ticker := time.NewTicker(memoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryBackend) cleanup() {
	now := m.now()
	m.mu.Lock()
	for _, entries := range []map[string]expiringEntry{m.sessions, m.resets} {
		for key, e := range entries {
			if !now.Before(e.expiresAt) {
				delete(entries, key)
			}
		}
	}
	m.mu.Unlock()
}
