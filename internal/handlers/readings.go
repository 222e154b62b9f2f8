package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hydro_monitor/internal/models"
	"hydro_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// @Summary      Latest stored reading
// @Description  Newest reading from storage, or an empty object when nothing has been stored.
// @Tags         readings
// @Produce      json
// @Success      200  {object}  models.Reading
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/latest [get]
func (h *Handler) latest(c *gin.Context) {
	r, found, err := h.services.Latest(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadReadings, "latest_failed", err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Reading history
// @Description  Newest first. limit is clamped to [1,1000]; a missing or non-integer limit means 100. Date-only 'to' is treated as end of day.
// @Tags         readings
// @Produce      json
// @Param        limit  query  string  false  "Maximum rows"  example(100)
// @Param        from   query  string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"
// @Param        to     query  string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"
// @Success      200  {object}  map[string]interface{}  "rows, count"
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/history [get]
func (h *Handler) history(c *gin.Context) {
	filter := service.HistoryFilter{Limit: parseLimit(c.Query("limit"))}

	var err error
	if qs := c.Query("from"); qs != "" {
		if filter.From, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if filter.To, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			filter.To = filter.To.Add(24*time.Hour - time.Second)
		}
	}

	rows, err := h.services.History(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": errRangeInvalid})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadReadings, "history_failed", err,
			"limit", filter.Limit, "from", filter.From, "to", filter.To)
		return
	}
	if rows == nil {
		rows = []models.Reading{}
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "ok, ts"
// @Router       /api/ping [get]
func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"ts": models.FormatTimestamp(h.services.Ping()),
	})
}

// parseLimit returns the requested row count, or the default when missing or not an integer.
// Bounds are applied by the service.
func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return service.DefaultHistoryLimit
	}
	return n
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
