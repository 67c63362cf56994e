package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
)

// NewMemory returns a Repository held in process memory. It mirrors the
// Postgres constraints and is used as the test fake.
func NewMemory() *Repository {
	s := &memoryStore{
		users:    make(map[string]User),
		profiles: make(map[string]analytics.Profile),
	}
	return &Repository{
		Users:        (*memUsers)(s),
		DailyMetrics: (*memDailyMetrics)(s),
		Training:     (*memTraining)(s),
		Spravato:     (*memSpravato)(s),
		Jumps:        (*memJumps)(s),
	}
}

type memoryStore struct {
	mu       sync.RWMutex
	users    map[string]User
	profiles map[string]analytics.Profile
	metrics  []DailyMetric
	training []TrainingSession
	spravato []SpravatoSession
	jumps    []JumpTest
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func onOrAfter(t, since time.Time) bool {
	return !t.Before(since)
}

// filterSorted orders the kept records by date with insertion order
// breaking ties.
func filterSorted[T any](records []T, keep func(T) bool, date func(T) time.Time) []T {
	var out []T
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return date(a).Compare(date(b))
	})
	return out
}

type memUsers memoryStore

func (m *memUsers) Create(_ context.Context, user User, profile analytics.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrConflict
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	profile.ID = user.ID
	m.users[user.ID] = user
	m.profiles[user.ID] = profile
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	return nil
}

func (m *memUsers) GetProfile(_ context.Context, userID string) (analytics.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return analytics.Profile{}, ErrNotFound
	}
	return p, nil
}

type memDailyMetrics memoryStore

func (m *memDailyMetrics) Insert(_ context.Context, metric DailyMetric) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.metrics {
		if existing.UserID == metric.UserID && sameDay(existing.Date, metric.Date) {
			return ErrConflict
		}
	}
	if metric.CreatedAt.IsZero() {
		metric.CreatedAt = time.Now().UTC()
	}
	m.metrics = append(m.metrics, metric)
	return nil
}

func (m *memDailyMetrics) List(_ context.Context, userID string, since time.Time) ([]DailyMetric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return filterSorted(m.metrics,
		func(d DailyMetric) bool { return d.UserID == userID && onOrAfter(d.Date, since) },
		func(d DailyMetric) time.Time { return d.Date },
	), nil
}

func (m *memDailyMetrics) Latest(ctx context.Context, userID string) (DailyMetric, error) {
	all, _ := m.List(ctx, userID, time.Time{})
	if len(all) == 0 {
		return DailyMetric{}, ErrNotFound
	}
	return all[len(all)-1], nil
}

func (m *memDailyMetrics) Series(ctx context.Context, userID string, column MetricColumn, since time.Time) ([]SeriesPoint, error) {
	value, ok := metricColumns[column]
	if !ok {
		return nil, fmt.Errorf("unknown metric column %q", column)
	}

	metrics, _ := m.List(ctx, userID, since)
	points := make([]SeriesPoint, 0, len(metrics))
	for _, d := range metrics {
		points = append(points, SeriesPoint{Date: d.Date, Value: value(d)})
	}
	return points, nil
}

type memTraining memoryStore

func (m *memTraining) Insert(_ context.Context, s TrainingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.training = append(m.training, s)
	return nil
}

func (m *memTraining) List(_ context.Context, userID string, since time.Time) ([]TrainingSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return filterSorted(m.training,
		func(s TrainingSession) bool { return s.UserID == userID && onOrAfter(s.Date, since) },
		func(s TrainingSession) time.Time { return s.Date },
	), nil
}

type memSpravato memoryStore

func (m *memSpravato) Insert(_ context.Context, s SpravatoSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spravato = append(m.spravato, s)
	return nil
}

func (m *memSpravato) List(_ context.Context, userID string) ([]SpravatoSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return filterSorted(m.spravato,
		func(s SpravatoSession) bool { return s.UserID == userID },
		func(s SpravatoSession) time.Time { return s.Date },
	), nil
}

type memJumps memoryStore

func (m *memJumps) Insert(_ context.Context, j JumpTest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jumps = append(m.jumps, j)
	return nil
}

func (m *memJumps) List(_ context.Context, userID string, since time.Time) ([]JumpTest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return filterSorted(m.jumps,
		func(j JumpTest) bool { return j.UserID == userID && onOrAfter(j.Date, since) },
		func(j JumpTest) time.Time { return j.Date },
	), nil
}

func (m *memJumps) Recent(ctx context.Context, userID string, n int) ([]JumpTest, error) {
	all, _ := m.List(ctx, userID, time.Time{})
	k := max(0, min(n, len(all)))
	return all[len(all)-k:], nil
}
