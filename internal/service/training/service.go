package training

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/google/uuid"
)

type Service interface {
	// Record computes the session's loads and stores them. The exercise
	// list itself is not kept.
	Record(ctx context.Context, userID string, date time.Time, s analytics.Session) (repository.TrainingSession, error)

	// Readiness analyses the daily load series built from the last days of
	// sessions. Returns formula.ErrNoData when there are none.
	Readiness(ctx context.Context, userID string, days int) (analytics.Readiness, error)
}

type Tracker struct {
	sessions repository.TrainingRepository
	now      func() time.Time
}

var _ Service = (*Tracker)(nil)

func NewTracker(sessions repository.TrainingRepository) *Tracker {
	return &Tracker{sessions: sessions, now: time.Now}
}

func (t *Tracker) Record(ctx context.Context, userID string, date time.Time, s analytics.Session) (repository.TrainingSession, error) {
	if date.IsZero() {
		date = t.now()
	}
	y, m, d := date.Date()

	load := analytics.CalculateLoad(s)
	session := repository.TrainingSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		DurationMinutes: s.DurationMinutes,
		RPE:             s.RPE,
		InternalLoad:    load.InternalLoad,
		VolumeLoad:      load.VolumeLoad,
		Classification:  load.Classification,
		CreatedAt:       t.now().UTC(),
	}

	if err := t.sessions.Insert(ctx, session); err != nil {
		return repository.TrainingSession{}, fmt.Errorf("recording training session: %w", err)
	}
	return session, nil
}

func (t *Tracker) Readiness(ctx context.Context, userID string, days int) (analytics.Readiness, error) {
	now := t.now()
	sessions, err := t.sessions.List(ctx, userID, repository.Cutoff(now, days))
	if err != nil {
		return analytics.Readiness{}, fmt.Errorf("listing training sessions: %w", err)
	}

	loads := make([]analytics.DatedLoad, 0, len(sessions))
	for _, s := range sessions {
		loads = append(loads, analytics.DatedLoad{Date: s.Date, Load: s.InternalLoad})
	}

	r, err := analytics.AnalyzeReadiness(analytics.DailySeries(loads, now))
	if err != nil {
		return analytics.Readiness{}, fmt.Errorf("analyzing readiness: %w", err)
	}
	return r, nil
}
