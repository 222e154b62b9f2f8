package repository

import (
	"context"
	"database/sql"
	"time"

	"hydro_monitor/internal/models"
)

// ReadingRepo is the append-only store of canonical readings.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) error
	Latest(ctx context.Context) (models.Reading, bool, error)
	List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error)
}

type Repository struct {
	ReadingRepo ReadingRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ReadingRepo: NewReadingSQLite(db),
	}
}
