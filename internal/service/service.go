package service

import (
	"context"
	"errors"
	"time"

	"hydro_monitor/internal/models"
	"hydro_monitor/internal/normalizer"
	"hydro_monitor/internal/repository"
)

var (
	// ErrInvalidToken is returned when the ingest token is missing or wrong.
	ErrInvalidToken = errors.New("invalid token")
	// ErrStorage wraps failures of the reading repository.
	ErrStorage = errors.New("storage failure")
	// ErrInvalidTimeRange is returned when a history filter has From after To.
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
)

// Ingestion normalizes inbound payloads and records them.
type Ingestion interface {
	Authorize(token string) error
	Ingest(ctx context.Context, p normalizer.Payload) (models.Reading, error)
	Cached() models.Reading
}

// Query serves stored readings. It reads the repository, never the in-memory cache.
type Query interface {
	Latest(ctx context.Context) (models.Reading, bool, error)
	History(ctx context.Context, f HistoryFilter) ([]models.Reading, error)
	Ping() time.Time
}

// Simulator feeds synthetic sensor payloads through Ingestion until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Ingestion
	Query
	Simulator
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, ingestToken string) *Service {
	ingest := NewIngestService(repos.ReadingRepo, ingestToken)
	return &Service{
		Ingestion: ingest,
		Query:     NewQueryService(repos.ReadingRepo),
		Simulator: NewSimulatorService(ingest),
	}
}
