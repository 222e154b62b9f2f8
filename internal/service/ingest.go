package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"hydro_monitor/internal/metrics"
	"hydro_monitor/internal/models"
	"hydro_monitor/internal/normalizer"
	"hydro_monitor/internal/repository"
)

type IngestService struct {
	repo  repository.ReadingRepo
	cache *LatestCache
	token string
	now   func() time.Time
}

// NewIngestService returns an ingest pipeline. An empty token disables the token check.
func NewIngestService(repo repository.ReadingRepo, token string) *IngestService {
	return &IngestService{
		repo:  repo,
		cache: NewLatestCache(),
		token: token,
		now:   time.Now,
	}
}

// Authorize checks the shared ingest secret, if one is configured.
func (s *IngestService) Authorize(token string) error {
	if s.token == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		metrics.RecordIngest(metrics.OutcomeUnauthorized)
		return ErrInvalidToken
	}
	return nil
}

// Ingest normalizes p, replaces the cached reading and appends it to storage.
// The returned reading is exactly what was cached, also on storage failure.
func (s *IngestService) Ingest(ctx context.Context, p normalizer.Payload) (models.Reading, error) {
	r := s.cache.Replace(normalizer.Normalize(p, s.now()))
	metrics.RecordReading(r)

	if err := s.repo.Append(ctx, r); err != nil {
		metrics.RecordIngest(metrics.OutcomeStorageError)
		return r, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	metrics.RecordIngest(metrics.OutcomeStored)
	return r, nil
}

// Cached returns the most recently ingested reading held in memory.
func (s *IngestService) Cached() models.Reading {
	return s.cache.Get()
}
