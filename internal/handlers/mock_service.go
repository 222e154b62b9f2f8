package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"hydro_monitor/internal/models"
	"hydro_monitor/internal/normalizer"
	"hydro_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockIngestion struct {
	mu sync.Mutex

	authErr   error
	ingestErr error
	cached    models.Reading
	now       time.Time

	lastToken   string
	ingested    []normalizer.Payload
	ingestCalls int
}

func (m *mockIngestion) Authorize(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastToken = token
	return m.authErr
}

// Ingest runs the real normalizer so handlers see realistic readings.
func (m *mockIngestion) Ingest(ctx context.Context, p normalizer.Payload) (models.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingestCalls++
	m.ingested = append(m.ingested, p)
	now := m.now
	if now.IsZero() {
		now = time.Now()
	}
	return normalizer.Normalize(p, now), m.ingestErr
}

func (m *mockIngestion) Cached() models.Reading {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cached
}

type mockQuery struct {
	latest    models.Reading
	found     bool
	latestErr error

	rows       []models.Reading
	historyErr error
	lastFilter service.HistoryFilter

	pingTime time.Time
}

func (m *mockQuery) Latest(ctx context.Context) (models.Reading, bool, error) {
	return m.latest, m.found, m.latestErr
}

func (m *mockQuery) History(ctx context.Context, f service.HistoryFilter) ([]models.Reading, error) {
	m.lastFilter = f
	return m.rows, m.historyErr
}

func (m *mockQuery) Ping() time.Time {
	return m.pingTime
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func tokenHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set(ingestTokenHeader, token)
	}
	return h
}

func newIngestRequest(body, token string) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vv := range tokenHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
