package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/internal/service"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
	"github.com/univ-fsi/surveillance-api/pkg/response"
)

// CatalogHandler exposes the reference data endpoints: formations,
// timeslots and course loads.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs the catalog handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListFormations returns every formation.
func (h *CatalogHandler) ListFormations(c *gin.Context) {
	formations, err := h.catalog.ListFormations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, formations, nil)
}

// GetFormation returns one formation.
func (h *CatalogHandler) GetFormation(c *gin.Context) {
	formation, err := h.catalog.GetFormation(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, formation, nil)
}

// ListTimeSlots returns every timeslot.
func (h *CatalogHandler) ListTimeSlots(c *gin.Context) {
	slots, err := h.catalog.ListTimeSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// CreateTimeSlot registers a (date, time, room) triple.
func (h *CatalogHandler) CreateTimeSlot(c *gin.Context) {
	var req dto.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	slot, err := h.catalog.CreateTimeSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// ListCourseLoads returns course loads, optionally filtered by teacher
// codes (comma separated) and academic year.
func (h *CatalogHandler) ListCourseLoads(c *gin.Context) {
	filter := models.CourseLoadFilter{AcademicYear: c.Query("academic_year")}
	if codes := c.Query("teacher_codes"); codes != "" {
		for _, code := range strings.Split(codes, ",") {
			if trimmed := strings.TrimSpace(code); trimmed != "" {
				filter.TeacherCodes = append(filter.TeacherCodes, trimmed)
			}
		}
	}

	loads, err := h.catalog.ListCourseLoads(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, loads, nil)
}

// CreateCourseLoad registers a teaching assignment record.
func (h *CatalogHandler) CreateCourseLoad(c *gin.Context) {
	var req dto.CreateCourseLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	load, err := h.catalog.CreateCourseLoad(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, load)
}
