package models

import (
	"database/sql"
	"time"
)

// Invigilation assigns a teacher to supervise one planning. At most one
// invigilation per planning carries the lead flag (the course-owner
// invigilator).
type Invigilation struct {
	ID          string    `db:"id" json:"id"`
	PlanningID  string    `db:"planning_id" json:"planning_id"`
	TeacherCode string    `db:"teacher_code" json:"teacher_code"`
	IsLead      bool      `db:"is_lead" json:"is_lead"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// InvigilationDetail joins an invigilation to its planning's timeslot and
// the assigned teacher. Timeslot fields may be absent on broken links.
type InvigilationDetail struct {
	ID          string         `db:"id" json:"id"`
	PlanningID  string         `db:"planning_id" json:"planning_id"`
	TeacherCode string         `db:"teacher_code" json:"teacher_code"`
	IsLead      bool           `db:"is_lead" json:"is_lead"`
	ExamDate    sql.NullTime   `db:"exam_date" json:"-"`
	StartTime   sql.NullString `db:"start_time" json:"-"`
	Room        sql.NullString `db:"room" json:"-"`
}

// HasSchedule reports whether the joined timeslot fields are usable.
func (d InvigilationDetail) HasSchedule() bool {
	return d.ExamDate.Valid && d.StartTime.Valid
}

// DateString renders the joined exam date, empty when the link is absent.
func (d InvigilationDetail) DateString() string {
	if !d.ExamDate.Valid {
		return ""
	}
	return d.ExamDate.Time.Format(DateLayout)
}

// PlanningInvigilator is an invigilation joined to the assigned teacher,
// as returned when listing a planning's invigilator set.
type PlanningInvigilator struct {
	ID          string         `db:"id" json:"id"`
	PlanningID  string         `db:"planning_id" json:"planning_id"`
	TeacherCode string         `db:"teacher_code" json:"teacher_code"`
	IsLead      bool           `db:"is_lead" json:"is_lead"`
	LastName    sql.NullString `db:"last_name" json:"-"`
	FirstName   sql.NullString `db:"first_name" json:"-"`
	Department  sql.NullString `db:"department" json:"-"`
	Email1      sql.NullString `db:"email1" json:"-"`
}

// MonitoringRow is the raw join feeding the monitoring listing. Formation
// and timeslot links may be absent on legacy rows.
type MonitoringRow struct {
	TeacherCode string         `db:"teacher_code"`
	LastName    sql.NullString `db:"last_name"`
	FirstName   sql.NullString `db:"first_name"`
	IsLead      bool           `db:"is_lead"`
	Module      sql.NullString `db:"module_name"`
	Level       sql.NullString `db:"level"`
	Specialty   sql.NullString `db:"program"`
	Room        sql.NullString `db:"room"`
	ExamDate    sql.NullTime   `db:"exam_date"`
	StartTime   sql.NullString `db:"start_time"`
}

// MonitoringEntry is one flattened surveillance duty row for listings and
// exports: who supervises what, where and when.
type MonitoringEntry struct {
	TeacherName string `json:"teacher_name"`
	TeacherCode string `json:"teacher_code"`
	Module      string `json:"module"`
	Room        string `json:"room"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Level       string `json:"level"`
	Specialty   string `json:"specialty"`
	Role        string `json:"role"`
}
