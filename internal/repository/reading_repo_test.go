package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"hydro_monitor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var readingCols = []string{"id", "ts", "temp_air", "hum_air", "ph", "ec", "temp_water", "distance_cm", "level1", "level2", "level3", "level4"}

func newMockReadingRepo(t *testing.T) (*ReadingSQLite, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewReadingSQLite(db), mock
}

func f64(v float64) *float64 { return &v }

type argMatcher func(v driver.Value) bool

func (f argMatcher) Match(v driver.Value) bool { return f(v) }

func TestReadingSQLite_Append_WritesNullsForAbsentFields(t *testing.T) {
	repo, mock := newMockReadingRepo(t)

	ts := time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)
	rd := models.Reading{
		PH:        f64(6.5),
		EC:        f64(1.8),
		Level1:    models.LevelHigh.Ptr(),
		Level4:    models.LevelLow.Ptr(),
		Timestamp: ts,
	}

	isUUID := argMatcher(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && len(s) == 36 && strings.Count(s, "-") == 4
	})

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs(isUUID, "2025-06-01T12:00:05Z",
			nil, nil, 6.5, 1.8, nil, nil,
			"alto", nil, nil, "bajo").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(context.Background(), rd); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestReadingSQLite_Append_KeepsGivenIDAndStampsZeroTime(t *testing.T) {
	repo, mock := newMockReadingRepo(t)

	recentUTC := argMatcher(func(v driver.Value) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		tm, err := models.ParseTimestamp(s)
		if err != nil {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta(insertReadingSQL)).
		WithArgs("fixed-id", recentUTC,
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(context.Background(), models.Reading{ID: "fixed-id"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestReadingSQLite_Append_ExecErrorIsWrapped(t *testing.T) {
	repo, mock := newMockReadingRepo(t)

	mock.ExpectExec("INSERT INTO sensor_readings").
		WillReturnError(errors.New("disk full"))

	err := repo.Append(context.Background(), models.Reading{Timestamp: time.Now()})
	if err == nil || !strings.Contains(err.Error(), "disk full") || !strings.Contains(err.Error(), "insert reading") {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestReadingSQLite_Latest(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		repo, mock := newMockReadingRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(selectReadingsSQL + newestFirst)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(readingCols))

		got, found, err := repo.Latest(context.Background())
		if err != nil {
			t.Fatalf("Latest: %v", err)
		}
		if found || got.ID != "" {
			t.Fatalf("expected not found, got %+v", got)
		}
	})

	t.Run("newest row mapped", func(t *testing.T) {
		repo, mock := newMockReadingRepo(t)
		rows := sqlmock.NewRows(readingCols).
			AddRow("abc", "2025-06-01T12:00:05Z", 24.5, nil, 6.5, 1.8, 21.0, nil, "alto", "bajo", nil, nil)
		mock.ExpectQuery(regexp.QuoteMeta(selectReadingsSQL + newestFirst)).
			WithArgs(1).
			WillReturnRows(rows)

		got, found, err := repo.Latest(context.Background())
		if err != nil || !found {
			t.Fatalf("Latest: found=%v err=%v", found, err)
		}
		if got.ID != "abc" || !got.Timestamp.Equal(time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)) {
			t.Fatalf("unexpected identity/timestamp: %+v", got)
		}
		if got.TempAir == nil || *got.TempAir != 24.5 || got.HumAir != nil || got.DistanceCM != nil {
			t.Fatalf("unexpected numeric mapping: %+v", got)
		}
		if got.Level1 == nil || *got.Level1 != models.LevelHigh || got.Level2 == nil || *got.Level2 != models.LevelLow || got.Level3 != nil {
			t.Fatalf("unexpected level mapping: %+v", got)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockReadingRepo(t)
		mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

		if _, _, err := repo.Latest(context.Background()); !errors.Is(err, sql.ErrConnDone) {
			t.Fatalf("expected wrapped ErrConnDone, got %v", err)
		}
	})
}

func TestReadingSQLite_List_WithRangeAndLimit(t *testing.T) {
	repo, mock := newMockReadingRepo(t)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 23, 59, 59, 0, time.FixedZone("X", 3600))

	query := selectReadingsSQL + ` WHERE ts >= ? AND ts <= ?` + newestFirst
	rows := sqlmock.NewRows(readingCols).
		AddRow("2", "2025-06-01T10:00:00Z", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil).
		AddRow("1", "2025-06-01T09:00:00Z", nil, nil, 7.0, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2025-06-01T00:00:00Z", "2025-06-01T22:59:59Z", 50).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), from, to, 50)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].ID != "1" {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if got[1].PH == nil || *got[1].PH != 7.0 {
		t.Fatalf("ph not mapped: %+v", got[1])
	}
}

func TestReadingSQLite_List_EmptyIsNonNil(t *testing.T) {
	repo, mock := newMockReadingRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectReadingsSQL + newestFirst)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(readingCols))

	got, err := repo.List(context.Background(), time.Time{}, time.Time{}, 100)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestReadingSQLite_List_BadTimestampFails(t *testing.T) {
	repo, mock := newMockReadingRepo(t)
	rows := sqlmock.NewRows(readingCols).
		AddRow("x", "yesterday", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	if _, err := repo.List(context.Background(), time.Time{}, time.Time{}, 10); err == nil {
		t.Fatalf("expected timestamp parse error")
	}
}
