package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
)

// teacherRepository is the roster persistence surface.
type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByCode(ctx context.Context, code string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, code string) error
}

// TeacherService manages the teacher roster.
type TeacherService struct {
	teachers  teacherRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(teachers teacherRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	return &TeacherService{teachers: teachers, cache: cache, validator: validate, logger: logger}
}

// List returns a filtered, paginated roster page with the total count.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	teachers, total, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list teachers: %w", err)
	}

	return teachers, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns one teacher by code.
func (s *TeacherService) Get(ctx context.Context, code string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("load teacher %s: %w", code, err)
	}
	return teacher, nil
}

// Create registers a new teacher. The code is the natural identity and
// must be unique.
func (s *TeacherService) Create(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	if _, err := s.teachers.FindByCode(ctx, req.Code); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict,
			fmt.Sprintf("teacher %s already exists", req.Code))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check teacher %s: %w", req.Code, err)
	}

	teacher := &models.Teacher{
		Code:       req.Code,
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Department: req.Department,
		Grade:      req.Grade,
		Email1:     req.Email1,
		Email2:     req.Email2,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("create teacher %s: %w", teacher.Code, err)
	}

	s.cache.InvalidatePattern(ctx, "workload:*")
	s.logger.Info("teacher created", zap.String("code", teacher.Code))
	return teacher, nil
}

// Update edits an existing teacher's mutable fields.
func (s *TeacherService) Update(ctx context.Context, code string, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	current, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	current.LastName = req.LastName
	current.FirstName = req.FirstName
	current.Department = req.Department
	current.Grade = req.Grade
	current.Email1 = req.Email1
	current.Email2 = req.Email2

	if err := s.teachers.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update teacher %s: %w", code, err)
	}

	s.cache.InvalidatePattern(ctx, "workload:*")
	s.logger.Info("teacher updated", zap.String("code", code))
	return current, nil
}

// Delete removes a teacher from the roster.
func (s *TeacherService) Delete(ctx context.Context, code string) error {
	if _, err := s.Get(ctx, code); err != nil {
		return err
	}
	if err := s.teachers.Delete(ctx, code); err != nil {
		return fmt.Errorf("delete teacher %s: %w", code, err)
	}

	s.cache.InvalidatePattern(ctx, "workload:*")
	s.logger.Info("teacher deleted", zap.String("code", code))
	return nil
}
