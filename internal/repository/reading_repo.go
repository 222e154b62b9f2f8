package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hydro_monitor/internal/models"

	"github.com/google/uuid"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

// Ensure implementation of ReadingRepo interface at compile time.
var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	readingColumns = `id, ts, temp_air, hum_air, ph, ec, temp_water, distance_cm, level1, level2, level3, level4`

	insertReadingSQL = `INSERT INTO sensor_readings (` + readingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectReadingsSQL = `SELECT ` + readingColumns + ` FROM sensor_readings`

	newestFirst = ` ORDER BY ts DESC, seq DESC LIMIT ?`
)

// Append inserts r with a fresh id. A zero timestamp is replaced by the current second.
func (r *ReadingSQLite) Append(ctx context.Context, rd models.Reading) error {
	if rd.ID == "" {
		rd.ID = uuid.NewString()
	}
	if rd.Timestamp.IsZero() {
		rd.Timestamp = time.Now().UTC().Truncate(time.Second)
	}

	_, err := r.db.ExecContext(ctx, insertReadingSQL,
		rd.ID,
		models.FormatTimestamp(rd.Timestamp),
		nullableFloat(rd.TempAir),
		nullableFloat(rd.HumAir),
		nullableFloat(rd.PH),
		nullableFloat(rd.EC),
		nullableFloat(rd.TempWater),
		nullableFloat(rd.DistanceCM),
		nullableLevel(rd.Level1),
		nullableLevel(rd.Level2),
		nullableLevel(rd.Level3),
		nullableLevel(rd.Level4),
	)
	if err != nil {
		return fmt.Errorf("insert reading %s: %w", rd.ID, err)
	}
	return nil
}

// Latest returns the newest stored reading; found is false when the table is empty.
func (r *ReadingSQLite) Latest(ctx context.Context) (models.Reading, bool, error) {
	rows, err := r.List(ctx, time.Time{}, time.Time{}, 1)
	if err != nil {
		return models.Reading{}, false, err
	}
	if len(rows) == 0 {
		return models.Reading{}, false, nil
	}
	return rows[0], true, nil
}

// List returns up to limit readings within [from, to] (zero bounds are open), newest first.
func (r *ReadingSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "ts >= ?")
		args = append(args, models.FormatTimestamp(from))
	}
	if !to.IsZero() {
		conds = append(conds, "ts <= ?")
		args = append(args, models.FormatTimestamp(to))
	}

	q := selectReadingsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += newestFirst
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select readings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Reading, 0, 64)
	for rows.Next() {
		rd, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}
	return out, nil
}

func scanReading(rows *sql.Rows) (models.Reading, error) {
	var (
		rd                                           models.Reading
		ts                                           string
		tempAir, humAir, ph, ec, tempWater, distance sql.NullFloat64
		level1, level2, level3, level4               sql.NullString
	)
	if err := rows.Scan(&rd.ID, &ts, &tempAir, &humAir, &ph, &ec, &tempWater, &distance,
		&level1, &level2, &level3, &level4); err != nil {
		return models.Reading{}, fmt.Errorf("scan reading: %w", err)
	}

	parsed, err := models.ParseTimestamp(ts)
	if err != nil {
		return models.Reading{}, fmt.Errorf("reading %s has bad timestamp %q: %w", rd.ID, ts, err)
	}
	rd.Timestamp = parsed
	rd.TempAir = floatOrNil(tempAir)
	rd.HumAir = floatOrNil(humAir)
	rd.PH = floatOrNil(ph)
	rd.EC = floatOrNil(ec)
	rd.TempWater = floatOrNil(tempWater)
	rd.DistanceCM = floatOrNil(distance)
	rd.Level1 = levelOrNil(level1)
	rd.Level2 = levelOrNil(level2)
	rd.Level3 = levelOrNil(level3)
	rd.Level4 = levelOrNil(level4)
	return rd, nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableLevel(l *models.Level) any {
	if l == nil {
		return nil
	}
	return string(*l)
}

func floatOrNil(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func levelOrNil(n sql.NullString) *models.Level {
	if !n.Valid {
		return nil
	}
	return models.Level(n.String).Ptr()
}
