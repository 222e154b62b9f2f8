package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ingestTokenHeader = "X-INGEST-TOKEN"

// ingestTokenMiddleware rejects the request before its body is read when the shared secret does not match.
func (h *Handler) ingestTokenMiddleware(c *gin.Context) {
	if err := h.services.Authorize(c.GetHeader(ingestTokenHeader)); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"ok":    false,
			"error": errInvalidToken,
		})
		return
	}
	c.Next()
}
