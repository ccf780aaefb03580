package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/pkg/config"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
	"github.com/univ-fsi/surveillance-api/pkg/export"
)

// Export formats supported by the reporting surface.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

var monitoringHeaders = []string{"Enseignant", "Code", "Module", "Salle", "Date", "Horaire", "Niveau", "Spécialité", "Rôle"}

var workloadHeaders = []string{"Enseignant", "Code", "Surveillances", "Charges", "Attendu", "Écart", "Statut", "Sévérité", "Recommandation"}

// ExportResult is a rendered report ready for download.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the monitoring listing and the workload balance
// report as downloadable documents.
type ExportService struct {
	plannings *PlanningService
	workload  *WorkloadService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	cfg       config.ExportsConfig
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(
	plannings *PlanningService,
	workload *WorkloadService,
	cfg config.ExportsConfig,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		plannings: plannings,
		workload:  workload,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		cfg:       cfg,
		logger:    logger,
	}
}

// MonitoringReport renders the flattened surveillance duty listing.
func (s *ExportService) MonitoringReport(ctx context.Context, format string) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}

	entries, err := s.plannings.Monitoring(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: monitoringHeaders}
	for _, e := range entries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Enseignant": e.TeacherName,
			"Code":       e.TeacherCode,
			"Module":     e.Module,
			"Salle":      e.Room,
			"Date":       e.Date,
			"Horaire":    e.Time,
			"Niveau":     e.Level,
			"Spécialité": e.Specialty,
			"Rôle":       e.Role,
		})
	}

	return s.render(dataset, format, "surveillances", s.cfg.Title)
}

// WorkloadReport renders the ranked workload analysis.
func (s *ExportService) WorkloadReport(ctx context.Context, format string, target *int) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled")
	}

	report, _, err := s.workload.ComputeBalance(ctx, target)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: workloadHeaders}
	for _, row := range report.TeacherAnalysis {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Enseignant":     row.TeacherInfo.Name,
			"Code":           row.TeacherInfo.Code,
			"Surveillances":  strconv.Itoa(row.Statistics.SurveillanceCount),
			"Charges":        strconv.Itoa(row.Statistics.CoursesCount),
			"Attendu":        strconv.FormatFloat(row.Statistics.ExpectedSurveillance, 'f', 2, 64),
			"Écart":          strconv.FormatFloat(row.Statistics.Deviation, 'f', 2, 64),
			"Statut":         row.Statistics.Status,
			"Sévérité":       row.Statistics.Severity,
			"Recommandation": row.Recommendation,
		})
	}

	title := fmt.Sprintf("%s - Équilibre de la charge", s.cfg.Title)
	return s.render(dataset, format, "charge_surveillance", title)
}

func (s *ExportService) render(dataset export.Dataset, format, basename, title string) (*ExportResult, error) {
	s.logger.Info("rendering export",
		zap.String("format", format),
		zap.String("report", basename),
		zap.Int("rows", len(dataset.Rows)))

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, fmt.Errorf("render csv export: %w", err)
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    basename + ".csv",
		}, nil
	case FormatPDF:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, fmt.Errorf("render pdf export: %w", err)
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    basename + ".pdf",
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("unsupported export format %q", format))
	}
}
