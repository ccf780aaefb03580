package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/univ-fsi/surveillance-api/internal/service"
	"github.com/univ-fsi/surveillance-api/pkg/response"
)

// ExportHandler serves downloadable report documents.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs the export handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Monitoring downloads the surveillance duty listing.
func (h *ExportHandler) Monitoring(c *gin.Context) {
	result, err := h.exports.MonitoringReport(c.Request.Context(), exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

// Workload downloads the ranked workload analysis.
func (h *ExportHandler) Workload(c *gin.Context) {
	target, err := parseTarget(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exports.WorkloadReport(c.Request.Context(), exportFormat(c), target)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, result)
}

func exportFormat(c *gin.Context) string {
	if format := c.Query("format"); format != "" {
		return format
	}
	return service.FormatCSV
}

func serveDownload(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
