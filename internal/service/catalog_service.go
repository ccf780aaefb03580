package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
)

// catalogFormationRepository is the formation reference-data surface.
type catalogFormationRepository interface {
	ListAll(ctx context.Context) ([]models.Formation, error)
	FindByID(ctx context.Context, id string) (*models.Formation, error)
}

// catalogTimeSlotRepository is the timeslot reference-data surface.
type catalogTimeSlotRepository interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
	FindByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Create(ctx context.Context, slot *models.TimeSlot) error
}

// catalogCourseLoadRepository is the course-load reference-data surface.
type catalogCourseLoadRepository interface {
	List(ctx context.Context, filter models.CourseLoadFilter) ([]models.CourseLoad, error)
	Create(ctx context.Context, load *models.CourseLoad) error
}

// CatalogService serves the reference data the scheduling surface builds
// on: formations, timeslots and course loads.
type CatalogService struct {
	formations  catalogFormationRepository
	timeslots   catalogTimeSlotRepository
	courseLoads catalogCourseLoadRepository
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(
	formations catalogFormationRepository,
	timeslots catalogTimeSlotRepository,
	courseLoads catalogCourseLoadRepository,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	return &CatalogService{
		formations:  formations,
		timeslots:   timeslots,
		courseLoads: courseLoads,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// ListFormations returns every formation.
func (s *CatalogService) ListFormations(ctx context.Context) ([]models.Formation, error) {
	formations, err := s.formations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}
	return formations, nil
}

// GetFormation returns one formation by id.
func (s *CatalogService) GetFormation(ctx context.Context, id string) (*models.Formation, error) {
	formation, err := s.formations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load formation %s: %w", id, err)
	}
	return formation, nil
}

// ListTimeSlots returns every timeslot.
func (s *CatalogService) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	slots, err := s.timeslots.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// CreateTimeSlot registers a (date, time, room) triple. The triple is
// conceptually unique; re-creating an existing one returns the stored row.
func (s *CatalogService) CreateTimeSlot(ctx context.Context, req dto.CreateTimeSlotRequest) (*models.TimeSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timeslot payload")
	}

	examDate, err := time.Parse(models.DateLayout, req.ExamDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam_date must use the YYYY-MM-DD layout")
	}

	slot := &models.TimeSlot{
		ExamDate:  examDate,
		StartTime: req.StartTime,
		Room:      req.Room,
	}
	if err := s.timeslots.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create timeslot: %w", err)
	}

	s.cache.InvalidatePattern(ctx, "conflicts:*")
	s.logger.Info("timeslot created",
		zap.String("date", slot.DateString()),
		zap.String("time", slot.StartTime),
		zap.String("room", slot.Room))
	return slot, nil
}

// ListCourseLoads returns course loads, optionally filtered.
func (s *CatalogService) ListCourseLoads(ctx context.Context, filter models.CourseLoadFilter) ([]models.CourseLoad, error) {
	loads, err := s.courseLoads.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list course loads: %w", err)
	}
	return loads, nil
}

// CreateCourseLoad registers a teaching assignment record.
func (s *CatalogService) CreateCourseLoad(ctx context.Context, req dto.CreateCourseLoadRequest) (*models.CourseLoad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course load payload")
	}

	load := &models.CourseLoad{
		TeacherCode:  req.TeacherCode,
		FormationID:  req.FormationID,
		Section:      req.Section,
		Group:        req.Group,
		Type:         req.Type,
		ModuleName:   req.ModuleName,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
	}
	if err := s.courseLoads.Create(ctx, load); err != nil {
		return nil, fmt.Errorf("create course load: %w", err)
	}

	s.cache.InvalidatePattern(ctx, "workload:*")
	s.logger.Info("course load created", zap.String("teacher_code", load.TeacherCode))
	return load, nil
}
