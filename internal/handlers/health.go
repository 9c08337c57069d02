// internal/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

// PingFunc checks a backing dependency.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	pingDB  PingFunc
	version string
	timeout time.Duration
}

func NewHealthHandler(pingDB PingFunc, version string) *HealthHandler {
	return &HealthHandler{
		pingDB:  pingDB,
		version: version,
		timeout: 2 * time.Second,
	}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// GET /v1/db/ping
func (h *HealthHandler) PingDatabase(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.pingDB(ctx); err != nil {
		logrus.WithError(err).Error("Database ping failed")
		utils.ServiceUnavailableResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyDatabaseDown))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"database":      "ok",
		"timestamp_utc": time.Now().UTC().Format(time.RFC3339),
	})
}
