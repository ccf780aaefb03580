package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/internal/repository"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
)

const (
	roleLead      = "Principal"
	roleAssistant = "Assistant"
)

// planningRepository is the persistence surface the planning service needs.
type planningRepository interface {
	ListDetails(ctx context.Context) ([]models.PlanningDetail, error)
	FindDetail(ctx context.Context, id string) (*models.PlanningDetail, error)
	FindByID(ctx context.Context, id string) (*models.Planning, error)
	CreateWithInvigilators(ctx context.Context, planning *models.Planning, invigilations []models.Invigilation) error
	ReplaceWithInvigilators(ctx context.Context, planning *models.Planning, invigilations []models.Invigilation) error
	Delete(ctx context.Context, id string) error
	InvigilatorsByPlanning(ctx context.Context, planningID string) ([]models.PlanningInvigilator, error)
}

// monitoringRepository feeds the flattened surveillance duty listing.
type monitoringRepository interface {
	MonitoringRows(ctx context.Context) ([]models.MonitoringRow, error)
}

// planningTeacherRepository verifies teacher codes on assignment.
type planningTeacherRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Teacher, error)
}

// PlanningService orchestrates exam plannings and their invigilator sets.
type PlanningService struct {
	plannings  planningRepository
	monitoring monitoringRepository
	teachers   planningTeacherRepository
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewPlanningService constructs a PlanningService.
func NewPlanningService(
	plannings planningRepository,
	monitoring monitoringRepository,
	teachers planningTeacherRepository,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
) *PlanningService {
	if validate == nil {
		validate = validator.New()
	}
	return &PlanningService{
		plannings:  plannings,
		monitoring: monitoring,
		teachers:   teachers,
		cache:      cache,
		validator:  validate,
		logger:     logger,
	}
}

// normalizeInvigilators validates the lead flags of an incoming invigilator
// set and returns a corrected copy: when no entry is flagged lead, the
// first one is promoted; more than one flagged lead is rejected.
func normalizeInvigilators(inputs []dto.InvigilatorInput) ([]dto.InvigilatorInput, error) {
	if len(inputs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one invigilator is required")
	}

	leads := 0
	for _, in := range inputs {
		if in.IsLead {
			leads++
		}
	}
	if leads > 1 {
		return nil, appErrors.ErrMultipleLeads
	}

	out := make([]dto.InvigilatorInput, len(inputs))
	copy(out, inputs)
	if leads == 0 {
		out[0].IsLead = true
	}
	return out, nil
}

func (s *PlanningService) verifyTeachers(ctx context.Context, inputs []dto.InvigilatorInput) error {
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if seen[in.TeacherCode] {
			return appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("teacher %s listed more than once", in.TeacherCode))
		}
		seen[in.TeacherCode] = true
		if _, err := s.teachers.FindByCode(ctx, in.TeacherCode); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound,
					fmt.Sprintf("teacher %s not found", in.TeacherCode))
			}
			return fmt.Errorf("verify teacher %s: %w", in.TeacherCode, err)
		}
	}
	return nil
}

// Create persists a planning and its invigilator set in one transaction.
func (s *PlanningService) Create(ctx context.Context, req dto.CreatePlanningRequest) (*dto.PlanningResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid planning payload")
	}

	invigilators, err := normalizeInvigilators(req.Invigilators)
	if err != nil {
		return nil, err
	}
	if err := s.verifyTeachers(ctx, invigilators); err != nil {
		return nil, err
	}

	planning := &models.Planning{
		FormationID:          &req.FormationID,
		TimeSlotID:           &req.TimeSlotID,
		Section:              req.Section,
		Session:              req.Session,
		RequiredInvigilators: req.RequiredInvigilators,
	}
	assignments := make([]models.Invigilation, len(invigilators))
	for i, in := range invigilators {
		assignments[i] = models.Invigilation{TeacherCode: in.TeacherCode, IsLead: in.IsLead}
	}

	if err := s.plannings.CreateWithInvigilators(ctx, planning, assignments); err != nil {
		return nil, fmt.Errorf("create planning: %w", err)
	}

	s.invalidateReports(ctx)
	s.logger.Info("planning created",
		zap.String("planning_id", planning.ID),
		zap.Int("invigilators", len(assignments)))

	return s.Get(ctx, planning.ID)
}

// Update replaces a planning's fields and its entire invigilator set.
func (s *PlanningService) Update(ctx context.Context, id string, req dto.UpdatePlanningRequest) (*dto.PlanningResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid planning payload")
	}

	current, err := s.plannings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load planning %s: %w", id, err)
	}

	invigilators, err := normalizeInvigilators(req.Invigilators)
	if err != nil {
		return nil, err
	}
	if err := s.verifyTeachers(ctx, invigilators); err != nil {
		return nil, err
	}

	if req.FormationID != nil {
		current.FormationID = req.FormationID
	}
	if req.TimeSlotID != nil {
		current.TimeSlotID = req.TimeSlotID
	}
	if req.Section != nil {
		current.Section = *req.Section
	}
	if req.Session != nil {
		current.Session = *req.Session
	}
	if req.RequiredInvigilators != nil {
		current.RequiredInvigilators = *req.RequiredInvigilators
	}

	assignments := make([]models.Invigilation, len(invigilators))
	for i, in := range invigilators {
		assignments[i] = models.Invigilation{TeacherCode: in.TeacherCode, IsLead: in.IsLead}
	}

	if err := s.plannings.ReplaceWithInvigilators(ctx, current, assignments); err != nil {
		return nil, fmt.Errorf("update planning %s: %w", id, err)
	}

	s.invalidateReports(ctx)
	s.logger.Info("planning updated", zap.String("planning_id", id))

	return s.Get(ctx, id)
}

// Delete removes a planning; its invigilations cascade with it.
func (s *PlanningService) Delete(ctx context.Context, id string) error {
	if err := s.plannings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete planning %s: %w", id, err)
	}

	s.invalidateReports(ctx)
	s.logger.Info("planning deleted", zap.String("planning_id", id))
	return nil
}

// Get returns one planning with its joined schedule and formation.
func (s *PlanningService) Get(ctx context.Context, id string) (*dto.PlanningResponse, error) {
	detail, err := s.plannings.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load planning %s: %w", id, err)
	}
	resp := toPlanningResponse(*detail)
	return &resp, nil
}

// List returns every planning with its joins.
func (s *PlanningService) List(ctx context.Context) ([]dto.PlanningResponse, error) {
	details, err := s.plannings.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plannings: %w", err)
	}
	out := make([]dto.PlanningResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toPlanningResponse(d))
	}
	return out, nil
}

// Invigilators lists a planning's invigilator set.
func (s *PlanningService) Invigilators(ctx context.Context, planningID string) ([]models.PlanningInvigilator, error) {
	if _, err := s.plannings.FindByID(ctx, planningID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load planning %s: %w", planningID, err)
	}
	rows, err := s.plannings.InvigilatorsByPlanning(ctx, planningID)
	if err != nil {
		return nil, fmt.Errorf("list invigilators for planning %s: %w", planningID, err)
	}
	return rows, nil
}

// Monitoring returns the flattened surveillance duty listing sorted by
// teacher name, then date, then time.
func (s *PlanningService) Monitoring(ctx context.Context) ([]models.MonitoringEntry, error) {
	rows, err := s.monitoring.MonitoringRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list monitoring rows: %w", err)
	}

	entries := make([]models.MonitoringEntry, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.FirstName.String + " " + row.LastName.String)
		if name == "" {
			name = row.TeacherCode
		}
		role := roleAssistant
		if row.IsLead {
			role = roleLead
		}
		entry := models.MonitoringEntry{
			TeacherName: name,
			TeacherCode: row.TeacherCode,
			Module:      row.Module.String,
			Room:        row.Room.String,
			Time:        row.StartTime.String,
			Level:       row.Level.String,
			Specialty:   row.Specialty.String,
			Role:        role,
		}
		if row.ExamDate.Valid {
			entry.Date = row.ExamDate.Time.Format(models.DateLayout)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TeacherName != entries[j].TeacherName {
			return entries[i].TeacherName < entries[j].TeacherName
		}
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].Time < entries[j].Time
	})

	return entries, nil
}

// invalidateReports drops cached conflict and workload reports after any
// planning mutation.
func (s *PlanningService) invalidateReports(ctx context.Context) {
	s.cache.InvalidatePattern(ctx, "conflicts:*")
	s.cache.InvalidatePattern(ctx, "workload:*")
}

func toPlanningResponse(d models.PlanningDetail) dto.PlanningResponse {
	resp := dto.PlanningResponse{
		ID:                   d.ID,
		Section:              d.Section,
		Session:              d.Session,
		RequiredInvigilators: d.RequiredInvigilators,
	}
	if d.TimeSlotID.Valid {
		resp.TimeSlot = &dto.TimeSlotResponse{
			ID:       d.TimeSlotID.String,
			ExamDate: d.DateString(),
			Time:     d.StartTime.String,
			Room:     d.Room.String,
		}
	}
	if d.FormationID.Valid {
		resp.Formation = &dto.FormationResponse{
			ID:       d.FormationID.String,
			Program:  d.FormationProgram.String,
			Level:    d.FormationLevel.String,
			Semester: d.FormationSemester.String,
			Module:   d.FormationModule.String,
		}
	}
	return resp
}
