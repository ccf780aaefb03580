package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

const courseLoadColumns = "id, teacher_code, formation_id, section, group_label, type, module_name, semester, academic_year, created_at"

// CourseLoadRepository manages persistence for teaching assignments.
type CourseLoadRepository struct {
	db *sqlx.DB
}

// NewCourseLoadRepository constructs a CourseLoadRepository.
func NewCourseLoadRepository(db *sqlx.DB) *CourseLoadRepository {
	return &CourseLoadRepository{db: db}
}

// List returns course loads, optionally restricted to a teacher-code set
// and academic year.
func (r *CourseLoadRepository) List(ctx context.Context, filter models.CourseLoadFilter) ([]models.CourseLoad, error) {
	query := fmt.Sprintf("SELECT %s FROM course_loads WHERE 1=1", courseLoadColumns)
	var args []interface{}

	if len(filter.TeacherCodes) > 0 {
		in, inArgs, err := sqlx.In(" AND teacher_code IN (?)", filter.TeacherCodes)
		if err != nil {
			return nil, fmt.Errorf("build course load filter: %w", err)
		}
		query += in
		args = append(args, inArgs...)
	}
	if filter.AcademicYear != "" {
		query += " AND academic_year = ?"
		args = append(args, filter.AcademicYear)
	}
	query += " ORDER BY teacher_code, id"
	query = r.db.Rebind(query)

	var loads []models.CourseLoad
	if err := r.db.SelectContext(ctx, &loads, query, args...); err != nil {
		return nil, fmt.Errorf("list course loads: %w", err)
	}
	return loads, nil
}

// Create inserts a course load record.
func (r *CourseLoadRepository) Create(ctx context.Context, load *models.CourseLoad) error {
	const query = `INSERT INTO course_loads (id, teacher_code, formation_id, section, group_label, type, module_name, semester, academic_year, created_at)
		VALUES (:id, :teacher_code, :formation_id, :section, :group_label, :type, :module_name, :semester, :academic_year, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, load); err != nil {
		return fmt.Errorf("create course load: %w", err)
	}
	return nil
}
