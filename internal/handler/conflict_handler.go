package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/univ-fsi/surveillance-api/internal/middleware"
	"github.com/univ-fsi/surveillance-api/internal/service"
	"github.com/univ-fsi/surveillance-api/pkg/response"
)

// ConflictHandler exposes the four scheduling-conflict reports.
type ConflictHandler struct {
	conflicts *service.ConflictService
}

// NewConflictHandler constructs the conflict handler.
func NewConflictHandler(conflicts *service.ConflictService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts}
}

// ExamDateSpread returns the schedule-spread report.
func (h *ConflictHandler) ExamDateSpread(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.conflicts.DetectExamDateSpread(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondReport(c, report, cacheHit, start)
}

// TeacherDoubleBookings returns the invigilator double-booking report.
func (h *ConflictHandler) TeacherDoubleBookings(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.conflicts.DetectTeacherDoubleBookings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondReport(c, report, cacheHit, start)
}

// RoomDoubleBookings returns the room double-booking report.
func (h *ConflictHandler) RoomDoubleBookings(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.conflicts.DetectRoomDoubleBookings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondReport(c, report, cacheHit, start)
}

// DuplicatePlannings returns the duplicate-planning report.
func (h *ConflictHandler) DuplicatePlannings(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.conflicts.DetectDuplicatePlannings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondReport(c, report, cacheHit, start)
}

func respondReport(c *gin.Context, report interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, report, nil, meta)
}
