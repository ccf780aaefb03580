package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/univ-fsi/surveillance-api/internal/service"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
	"github.com/univ-fsi/surveillance-api/pkg/response"
)

// SystemHandler serves health, readiness and instrumentation snapshots.
type SystemHandler struct {
	db      *sqlx.DB
	metrics *service.MetricsService
	started time.Time
	version string
}

// NewSystemHandler constructs the system handler.
func NewSystemHandler(db *sqlx.DB, metrics *service.MetricsService, version string) *SystemHandler {
	return &SystemHandler{db: db, metrics: metrics, started: time.Now(), version: version}
}

// Health reports liveness.
func (h *SystemHandler) Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	}, nil)
}

// Ready reports readiness by pinging the data store.
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db == nil {
		response.Error(c, appErrors.ErrStoreUnavailable)
		return
	}
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "database unreachable"))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ready"}, nil)
}

// Metrics returns the aggregated instrumentation snapshot.
func (h *SystemHandler) Metrics(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
