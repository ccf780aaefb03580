package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

// TimeSlotRepository manages persistence for exam timeslots.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs a TimeSlotRepository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// List returns all timeslots ordered by date and time.
func (r *TimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	const query = `SELECT id, exam_date, start_time, room, created_at FROM timeslots ORDER BY exam_date, start_time, room`
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// FindByID fetches one timeslot.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	const query = `SELECT id, exam_date, start_time, room, created_at FROM timeslots WHERE id = $1`
	var slot models.TimeSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a timeslot unless the same (date, time, room) triple
// already exists, in which case the existing row wins.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO timeslots (id, exam_date, start_time, room, created_at)
		VALUES (:id, :exam_date, :start_time, :room, :created_at)
		ON CONFLICT (exam_date, start_time, room) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create timeslot: %w", err)
	}
	return nil
}

// ListRoomSlots returns every room occurrence, the feed for the room
// double-booking check.
func (r *TimeSlotRepository) ListRoomSlots(ctx context.Context) ([]models.RoomSlot, error) {
	var slots []models.RoomSlot
	const query = `SELECT room, id AS timeslot_id, exam_date, start_time FROM timeslots WHERE room <> '' ORDER BY room, exam_date, start_time`
	if err := r.db.SelectContext(ctx, &slots, query); err != nil {
		return nil, fmt.Errorf("list room slots: %w", err)
	}
	return slots, nil
}
