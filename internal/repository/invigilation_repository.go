package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

// InvigilationRepository exposes read queries over invigilation
// assignments, the feed for the conflict detector and workload analyzer.
type InvigilationRepository struct {
	db *sqlx.DB
}

// NewInvigilationRepository constructs an InvigilationRepository.
func NewInvigilationRepository(db *sqlx.DB) *InvigilationRepository {
	return &InvigilationRepository{db: db}
}

// ListDetails returns every invigilation joined through its planning to
// the exam timeslot. Rows with broken links keep NULL schedule columns.
func (r *InvigilationRepository) ListDetails(ctx context.Context) ([]models.InvigilationDetail, error) {
	const query = `SELECT i.id, i.planning_id, i.teacher_code, i.is_lead,
		t.exam_date, t.start_time, t.room
		FROM invigilations i
		JOIN plannings p ON p.id = i.planning_id
		LEFT JOIN timeslots t ON t.id = p.timeslot_id
		ORDER BY i.created_at, i.id`
	var details []models.InvigilationDetail
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list invigilation details: %w", err)
	}
	return details, nil
}

// MonitoringRows returns the flattened duty join used by the monitoring
// listing and the report exports.
func (r *InvigilationRepository) MonitoringRows(ctx context.Context) ([]models.MonitoringRow, error) {
	const query = `SELECT i.teacher_code, te.last_name, te.first_name, i.is_lead,
		f.module_name, f.level, f.program,
		t.room, t.exam_date, t.start_time
		FROM invigilations i
		JOIN plannings p ON p.id = i.planning_id
		LEFT JOIN teachers te ON te.code = i.teacher_code
		LEFT JOIN formations f ON f.id = p.formation_id
		LEFT JOIN timeslots t ON t.id = p.timeslot_id`
	var rows []models.MonitoringRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list monitoring rows: %w", err)
	}
	return rows, nil
}
