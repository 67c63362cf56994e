package spravato

import (
	"context"
	"fmt"
	"time"

	"github.com/garrettladley/synthonia/internal/analytics"
	"github.com/garrettladley/synthonia/internal/formula"
	"github.com/garrettladley/synthonia/internal/repository"
	"github.com/google/uuid"
)

type Service interface {
	// Record stores a dosing session and returns its efficacy analysis.
	// Returns formula.ErrInvalidInput for a non-positive dose.
	Record(ctx context.Context, userID string, date time.Time, s formula.SpravatoSession) (repository.SpravatoSession, analytics.SessionAnalysis, error)

	// Trends returns formula.ErrNoData when no session is recorded.
	Trends(ctx context.Context, userID string) (formula.TrendAnalysis, error)

	NextDose(ctx context.Context, userID string) (formula.DosePrediction, error)
}

type Tracker struct {
	sessions repository.SpravatoRepository
	now      func() time.Time
}

var _ Service = (*Tracker)(nil)

func NewTracker(sessions repository.SpravatoRepository) *Tracker {
	return &Tracker{sessions: sessions, now: time.Now}
}

func (t *Tracker) Record(ctx context.Context, userID string, date time.Time, s formula.SpravatoSession) (repository.SpravatoSession, analytics.SessionAnalysis, error) {
	analysis, err := analytics.AnalyzeSession(s)
	if err != nil {
		return repository.SpravatoSession{}, analytics.SessionAnalysis{}, fmt.Errorf("analyzing session: %w", err)
	}

	if date.IsZero() {
		date = t.now()
	}
	y, m, d := date.Date()

	session := repository.SpravatoSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		Date:         time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		DoseMg:       s.DoseMg,
		Dissociation: s.Dissociation,
		MoodAfter:    s.MoodAfter,
		CreatedAt:    t.now().UTC(),
	}
	if err := t.sessions.Insert(ctx, session); err != nil {
		return repository.SpravatoSession{}, analytics.SessionAnalysis{}, fmt.Errorf("recording spravato session: %w", err)
	}
	return session, analysis, nil
}

func (t *Tracker) Trends(ctx context.Context, userID string) (formula.TrendAnalysis, error) {
	history, err := t.history(ctx, userID)
	if err != nil {
		return formula.TrendAnalysis{}, err
	}
	return history.Trends()
}

func (t *Tracker) NextDose(ctx context.Context, userID string) (formula.DosePrediction, error) {
	history, err := t.history(ctx, userID)
	if err != nil {
		return formula.DosePrediction{}, err
	}
	return history.NextDose(), nil
}

func (t *Tracker) history(ctx context.Context, userID string) (analytics.SpravatoHistory, error) {
	sessions, err := t.sessions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing spravato sessions: %w", err)
	}
	history := make(analytics.SpravatoHistory, 0, len(sessions))
	for _, s := range sessions {
		history = append(history, s.Formula())
	}
	return history, nil
}
