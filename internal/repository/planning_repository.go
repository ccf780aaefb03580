package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

// PlanningRepository manages persistence for exam plannings and their
// invigilator sets.
type PlanningRepository struct {
	db *sqlx.DB
}

// NewPlanningRepository constructs a PlanningRepository.
func NewPlanningRepository(db *sqlx.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

const planningDetailQuery = `SELECT p.id, p.section, p.session, p.required_invigilators,
	p.formation_id, f.semester AS formation_semester, f.module_name AS formation_module,
	f.program AS formation_program, f.level AS formation_level,
	p.timeslot_id, t.exam_date, t.start_time, t.room
	FROM plannings p
	LEFT JOIN formations f ON f.id = p.formation_id
	LEFT JOIN timeslots t ON t.id = p.timeslot_id`

// ListDetails returns every planning joined to its formation and timeslot.
// Broken links surface as NULL columns rather than dropped rows.
func (r *PlanningRepository) ListDetails(ctx context.Context) ([]models.PlanningDetail, error) {
	var details []models.PlanningDetail
	if err := r.db.SelectContext(ctx, &details, planningDetailQuery+" ORDER BY p.created_at, p.id"); err != nil {
		return nil, fmt.Errorf("list planning details: %w", err)
	}
	return details, nil
}

// FindDetail returns one planning with its joins.
func (r *PlanningRepository) FindDetail(ctx context.Context, id string) (*models.PlanningDetail, error) {
	var detail models.PlanningDetail
	if err := r.db.GetContext(ctx, &detail, planningDetailQuery+" WHERE p.id = $1", id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByID fetches the bare planning row.
func (r *PlanningRepository) FindByID(ctx context.Context, id string) (*models.Planning, error) {
	const query = `SELECT id, formation_id, timeslot_id, section, session, required_invigilators, created_at, updated_at FROM plannings WHERE id = $1`
	var planning models.Planning
	if err := r.db.GetContext(ctx, &planning, query, id); err != nil {
		return nil, err
	}
	return &planning, nil
}

// CreateWithInvigilators inserts a planning and its invigilation rows in
// one transaction.
func (r *PlanningRepository) CreateWithInvigilators(ctx context.Context, planning *models.Planning, invigilations []models.Invigilation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin planning tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	if planning.ID == "" {
		planning.ID = uuid.NewString()
	}
	planning.CreatedAt = now
	planning.UpdatedAt = now

	const insertPlanning = `INSERT INTO plannings (id, formation_id, timeslot_id, section, session, required_invigilators, created_at, updated_at)
		VALUES (:id, :formation_id, :timeslot_id, :section, :session, :required_invigilators, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertPlanning, planning); err != nil {
		return fmt.Errorf("insert planning: %w", err)
	}

	if err := insertInvigilations(ctx, tx, planning.ID, invigilations, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit planning tx: %w", err)
	}
	return nil
}

// ReplaceWithInvigilators updates a planning and swaps its entire
// invigilator set in one transaction.
func (r *PlanningRepository) ReplaceWithInvigilators(ctx context.Context, planning *models.Planning, invigilations []models.Invigilation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin planning tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	planning.UpdatedAt = now

	const updatePlanning = `UPDATE plannings SET formation_id = :formation_id, timeslot_id = :timeslot_id, section = :section,
		session = :session, required_invigilators = :required_invigilators, updated_at = :updated_at WHERE id = :id`
	if _, err := tx.NamedExecContext(ctx, updatePlanning, planning); err != nil {
		return fmt.Errorf("update planning: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM invigilations WHERE planning_id = $1", planning.ID); err != nil {
		return fmt.Errorf("clear invigilations: %w", err)
	}

	if err := insertInvigilations(ctx, tx, planning.ID, invigilations, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit planning tx: %w", err)
	}
	return nil
}

// Delete removes a planning; invigilations follow via the cascade FK.
func (r *PlanningRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM plannings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete planning: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete planning %s: %w", id, ErrNoRowsAffected)
	}
	return nil
}

// InvigilatorsByPlanning lists the invigilator set with teacher details.
func (r *PlanningRepository) InvigilatorsByPlanning(ctx context.Context, planningID string) ([]models.PlanningInvigilator, error) {
	const query = `SELECT i.id, i.planning_id, i.teacher_code, i.is_lead,
		te.last_name, te.first_name, te.department, te.email1
		FROM invigilations i
		LEFT JOIN teachers te ON te.code = i.teacher_code
		WHERE i.planning_id = $1
		ORDER BY i.is_lead DESC, i.created_at`
	var invigilators []models.PlanningInvigilator
	if err := r.db.SelectContext(ctx, &invigilators, query, planningID); err != nil {
		return nil, fmt.Errorf("list planning invigilators: %w", err)
	}
	return invigilators, nil
}

func insertInvigilations(ctx context.Context, tx *sqlx.Tx, planningID string, invigilations []models.Invigilation, now time.Time) error {
	const insert = `INSERT INTO invigilations (id, planning_id, teacher_code, is_lead, created_at)
		VALUES (:id, :planning_id, :teacher_code, :is_lead, :created_at)`
	for i := range invigilations {
		inv := &invigilations[i]
		if inv.ID == "" {
			inv.ID = uuid.NewString()
		}
		inv.PlanningID = planningID
		inv.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insert, inv); err != nil {
			return fmt.Errorf("insert invigilation for %s: %w", inv.TeacherCode, err)
		}
	}
	return nil
}
