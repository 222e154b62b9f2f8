package service

import (
	"context"
	"fmt"
	"time"

	"hydro_monitor/internal/models"
	"hydro_monitor/internal/repository"
)

type QueryService struct {
	repo repository.ReadingRepo
	now  func() time.Time
}

func NewQueryService(repo repository.ReadingRepo) *QueryService {
	return &QueryService{repo: repo, now: time.Now}
}

// Latest returns the newest stored reading; found is false when nothing is stored yet.
func (s *QueryService) Latest(ctx context.Context) (models.Reading, bool, error) {
	r, found, err := s.repo.Latest(ctx)
	if err != nil {
		return models.Reading{}, false, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return r, found, nil
}

// History returns up to f.Limit (clamped) stored readings, newest first.
func (s *QueryService) History(ctx context.Context, f HistoryFilter) ([]models.Reading, error) {
	from := toUTC(f.From)
	to := toUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidTimeRange
	}

	rows, err := s.repo.List(ctx, from, to, ClampHistoryLimit(f.Limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return rows, nil
}

// Ping reports the current server time in UTC, whole seconds.
func (s *QueryService) Ping() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
