package models

import "time"

// DateLayout is the canonical date rendering used across reports.
const DateLayout = "2006-01-02"

// TimeSlot is a (date, start time, room) triple. Two events clash when
// their date and start time are both equal; the room is a grouping key for
// the room conflict check only.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	ExamDate  time.Time `db:"exam_date" json:"exam_date"`
	StartTime string    `db:"start_time" json:"start_time"`
	Room      string    `db:"room" json:"room"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DateString renders the slot date in the canonical report layout.
func (s TimeSlot) DateString() string {
	return s.ExamDate.Format(DateLayout)
}

// RoomSlot is one timeslot occurrence for a given room, as consumed by the
// room double-booking check.
type RoomSlot struct {
	Room       string    `db:"room" json:"room"`
	TimeSlotID string    `db:"timeslot_id" json:"timeslot_id"`
	ExamDate   time.Time `db:"exam_date" json:"exam_date"`
	StartTime  string    `db:"start_time" json:"start_time"`
}

// DateString renders the occurrence date in the canonical report layout.
func (s RoomSlot) DateString() string {
	return s.ExamDate.Format(DateLayout)
}
