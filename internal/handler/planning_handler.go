package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/service"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
	"github.com/univ-fsi/surveillance-api/pkg/response"
)

// PlanningHandler exposes exam planning orchestration and the monitoring
// listing.
type PlanningHandler struct {
	plannings *service.PlanningService
}

// NewPlanningHandler constructs the planning handler.
func NewPlanningHandler(plannings *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{plannings: plannings}
}

// List returns every planning with its joined schedule and formation.
func (h *PlanningHandler) List(c *gin.Context) {
	plannings, err := h.plannings.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plannings, nil)
}

// Get returns one planning.
func (h *PlanningHandler) Get(c *gin.Context) {
	planning, err := h.plannings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, planning, nil)
}

// Create persists a planning together with its invigilator set.
func (h *PlanningHandler) Create(c *gin.Context) {
	var req dto.CreatePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	planning, err := h.plannings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, planning)
}

// Update replaces a planning's fields and its invigilator set.
func (h *PlanningHandler) Update(c *gin.Context) {
	var req dto.UpdatePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	planning, err := h.plannings.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, planning, nil)
}

// Delete removes a planning and its invigilations.
func (h *PlanningHandler) Delete(c *gin.Context) {
	if err := h.plannings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Invigilators lists a planning's invigilator set.
func (h *PlanningHandler) Invigilators(c *gin.Context) {
	invigilators, err := h.plannings.Invigilators(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, invigilators, nil)
}

// Monitoring returns the flattened surveillance duty listing.
func (h *PlanningHandler) Monitoring(c *gin.Context) {
	entries, err := h.plannings.Monitoring(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
