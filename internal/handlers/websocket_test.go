package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"hydro_monitor/internal/models"
	"hydro_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func TestWebSocket_ReadingStream_InitialAndPeriodic(t *testing.T) {
	ec := 1.7
	ing := &mockIngestion{cached: models.Reading{
		EC:        &ec,
		Level1:    models.LevelHigh.Ptr(),
		Timestamp: time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC),
	}}
	s := &service.Service{Ingestion: ing}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	q := u.Query()
	q.Set("interval_ms", "20") // fast ticks for the test
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "reading" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var got models.Reading
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("unmarshal reading: %v", err)
	}
	if got.EC == nil || *got.EC != 1.7 || got.Level1 == nil || *got.Level1 != models.LevelHigh || got.PH != nil {
		t.Fatalf("unexpected reading: %+v", got)
	}

	// cache changes are picked up on the next tick
	ing.mu.Lock()
	ing.cached.EC = nil
	ing.mu.Unlock()

	deadline := time.Now().Add(1 * time.Second)
	for {
		_ = conn.SetReadDeadline(deadline)
		env = envelope{}
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read tick: %v", err)
		}
		if env.Type != "reading" {
			t.Fatalf("expected type=reading, got %+v", env)
		}
		got = models.Reading{}
		_ = json.Unmarshal(env.Data, &got)
		if got.EC == nil {
			break
		}
	}
}

func TestWebSocket_ClientCloseEndsHandler(t *testing.T) {
	s := &service.Service{Ingestion: &mockIngestion{}}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
}
