package handlers

import (
	"errors"
	"net/http"

	"hydro_monitor/internal/normalizer"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidToken    = "invalid token"
	errStoreReading    = "failed to store reading"
	errLoadReadings    = "failed to load readings"
	errPayloadTooLarge = "payload too large"
	errFromInvalid     = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid       = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRangeInvalid    = "'from' must be <= 'to'"

	maxIngestBodyBytes = 1 << 20 // 1 MB
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"ok": false, "error": userMsg})
}

// @Summary      Ingest a sensor payload
// @Description  Accepts any JSON object. Unknown keys are ignored and unparseable values become null. A malformed body is stored as an all-null reading.
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        X-INGEST-TOKEN  header  string  false  "Shared secret, required when configured"
// @Param        payload         body    object  true   "Raw sensor payload"
// @Success      200  {object}  map[string]interface{}  "ok, saved"
// @Failure      401  {object}  map[string]interface{}
// @Failure      413  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /api/ingest [post]
func (h *Handler) ingest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxIngestBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logAndJSONError(c, http.StatusRequestEntityTooLarge, errPayloadTooLarge, "ingest_body_too_large", err)
			return
		}
		// unreadable body degrades to an empty payload like malformed JSON
		body = nil
	}

	saved, err := h.services.Ingest(c.Request.Context(), normalizer.DecodePayload(body))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errStoreReading, "ingest_store_failed", err,
			"ts", saved.Timestamp)
		return
	}

	if h.log != nil {
		h.log.Debugw("ingest_stored", "ts", saved.Timestamp, "remote", c.ClientIP())
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "saved": saved})
}
