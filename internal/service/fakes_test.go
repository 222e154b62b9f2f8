package service

import (
	"context"
	"sync"
	"time"

	"hydro_monitor/internal/models"
)

// fakeReadingRepo is an in-memory repository.ReadingRepo.
type fakeReadingRepo struct {
	mu        sync.Mutex
	appended  []models.Reading
	appendErr error

	latest    models.Reading
	found     bool
	latestErr error

	listResp  []models.Reading
	listErr   error
	lastFrom  time.Time
	lastTo    time.Time
	lastLimit int
}

func (f *fakeReadingRepo) Append(ctx context.Context, r models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, r)
	return nil
}

func (f *fakeReadingRepo) Latest(ctx context.Context) (models.Reading, bool, error) {
	return f.latest, f.found, f.latestErr
}

func (f *fakeReadingRepo) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	f.lastFrom, f.lastTo, f.lastLimit = from, to, limit
	return f.listResp, f.listErr
}

func (f *fakeReadingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
