package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/middleware"
	"github.com/univ-fsi/surveillance-api/internal/service"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
	"github.com/univ-fsi/surveillance-api/pkg/response"
)

// WorkloadHandler exposes the surveillance workload balance report.
type WorkloadHandler struct {
	workload *service.WorkloadService
}

// NewWorkloadHandler constructs the workload handler.
func NewWorkloadHandler(workload *service.WorkloadService) *WorkloadHandler {
	return &WorkloadHandler{workload: workload}
}

// Balance computes the workload balance report. The target, when supplied
// in the body or the query string, selects target-mode classification and
// must be non-negative; validation happens before any data fetch.
func (h *WorkloadHandler) Balance(c *gin.Context) {
	target, err := parseTarget(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	report, cacheHit, err := h.workload.ComputeBalance(c.Request.Context(), target)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, report, nil, meta)
}

func parseTarget(c *gin.Context) (*int, error) {
	if raw := c.Query("target"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "target must be an integer")
		}
		return validateTarget(value)
	}

	var req dto.WorkloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body selects ratio mode.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body")
	}
	if req.TargetSurveillances == nil {
		return nil, nil
	}
	return validateTarget(*req.TargetSurveillances)
}

func validateTarget(value int) (*int, error) {
	if value < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "target must be a non-negative integer")
	}
	return &value, nil
}
