// Package metrics exposes Prometheus collectors for the ingestion pipeline.
// Collectors register on the default registry and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hydro_monitor/internal/models"
)

// Ingest outcomes.
const (
	OutcomeStored       = "stored"
	OutcomeStorageError = "storage_error"
	OutcomeUnauthorized = "unauthorized"
)

var (
	IngestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_ingests_total",
			Help: "Total number of ingest attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Absent after normalization: missing, malformed or implausible.
	AbsentFieldsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_absent_fields_total",
			Help: "Total number of canonical reading fields that normalized to absent",
		},
		[]string{"field"},
	)

	LastReadingTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sensor_last_reading_timestamp_seconds",
			Help: "Unix timestamp of the most recently normalized reading",
		},
	)
)

// RecordIngest counts one ingest attempt.
func RecordIngest(outcome string) {
	IngestsTotal.WithLabelValues(outcome).Inc()
}

// RecordReading counts the absent fields of r and tracks its timestamp.
func RecordReading(r models.Reading) {
	for _, f := range AbsentFields(r) {
		AbsentFieldsTotal.WithLabelValues(f).Inc()
	}
	LastReadingTimestamp.Set(float64(r.Timestamp.Unix()))
}

// AbsentFields lists the JSON names of r's absent measurement fields.
func AbsentFields(r models.Reading) []string {
	var out []string
	for _, f := range []struct {
		name   string
		absent bool
	}{
		{"temp_air", r.TempAir == nil},
		{"hum_air", r.HumAir == nil},
		{"ph", r.PH == nil},
		{"ec", r.EC == nil},
		{"temp_water", r.TempWater == nil},
		{"distance_cm", r.DistanceCM == nil},
		{"level1", r.Level1 == nil},
		{"level2", r.Level2 == nil},
		{"level3", r.Level3 == nil},
		{"level4", r.Level4 == nil},
	} {
		if f.absent {
			out = append(out, f.name)
		}
	}
	return out
}
