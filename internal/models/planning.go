package models

import (
	"database/sql"
	"time"
)

// Planning is a scheduled exam instance: a formation+section sitting in one
// timeslot and requiring a number of invigilators. The required count is a
// target independent of how many invigilations currently exist.
type Planning struct {
	ID                   string    `db:"id" json:"id"`
	FormationID          *string   `db:"formation_id" json:"formation_id,omitempty"`
	TimeSlotID           *string   `db:"timeslot_id" json:"timeslot_id,omitempty"`
	Section              string    `db:"section" json:"section"`
	Session              string    `db:"session" json:"session"`
	RequiredInvigilators int       `db:"required_invigilators" json:"required_invigilators"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// PlanningDetail is a planning row joined to its formation and timeslot.
// Both links may be absent on legacy rows; the conflict detector skips
// such rows instead of failing the scan.
type PlanningDetail struct {
	ID                   string         `db:"id" json:"id"`
	Section              string         `db:"section" json:"section"`
	Session              string         `db:"session" json:"session"`
	RequiredInvigilators int            `db:"required_invigilators" json:"required_invigilators"`
	FormationID          sql.NullString `db:"formation_id" json:"-"`
	FormationSemester    sql.NullString `db:"formation_semester" json:"-"`
	FormationModule      sql.NullString `db:"formation_module" json:"-"`
	FormationProgram     sql.NullString `db:"formation_program" json:"-"`
	FormationLevel       sql.NullString `db:"formation_level" json:"-"`
	TimeSlotID           sql.NullString `db:"timeslot_id" json:"-"`
	ExamDate             sql.NullTime   `db:"exam_date" json:"-"`
	StartTime            sql.NullString `db:"start_time" json:"-"`
	Room                 sql.NullString `db:"room" json:"-"`
}

// HasSchedule reports whether the planning carries a usable timeslot link.
func (p PlanningDetail) HasSchedule() bool {
	return p.TimeSlotID.Valid && p.ExamDate.Valid && p.StartTime.Valid
}

// DateString renders the joined exam date, empty when the link is absent.
func (p PlanningDetail) DateString() string {
	if !p.ExamDate.Valid {
		return ""
	}
	return p.ExamDate.Time.Format(DateLayout)
}

// PlanningFilter restricts planning listings.
type PlanningFilter struct {
	FormationID string
	Session     string
	Page        int
	PageSize    int
}
