package dto

// SpreadConflictPair reports two plannings of one formation whose exam
// instances are not on the same date/time.
type SpreadConflictPair struct {
	Planning1ID string `json:"planning1_id"`
	Planning2ID string `json:"planning2_id"`
	Date1       string `json:"date_1"`
	Time1       string `json:"time_1"`
	Date2       string `json:"date_2"`
	Time2       string `json:"time_2"`
}

// SpreadConflictGroup collects spread conflicts for one formation, tagged
// with the formation's module name.
type SpreadConflictGroup struct {
	Module    string               `json:"module"`
	Conflicts []SpreadConflictPair `json:"conflicts"`
}

// SpreadReport is the schedule-spread check response. Message is set to an
// explicit "no conflicts" text when the list is empty.
type SpreadReport struct {
	Conflicts []SpreadConflictGroup `json:"conflicts,omitempty"`
	Message   string                `json:"message,omitempty"`
}

// BookingConflict reports two assignments that sit on exactly the same
// date and start time.
type BookingConflict struct {
	Invigilation1ID string `json:"invigilation1_id,omitempty"`
	Planning1ID     string `json:"planning1_id,omitempty"`
	Invigilation2ID string `json:"invigilation2_id,omitempty"`
	Planning2ID     string `json:"planning2_id,omitempty"`
	TimeSlot1ID     string `json:"timeslot1_id,omitempty"`
	TimeSlot2ID     string `json:"timeslot2_id,omitempty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
}

// TeacherBookingGroup collects double-booking conflicts for one teacher.
type TeacherBookingGroup struct {
	TeacherCode string            `json:"teacher_code"`
	Conflicts   []BookingConflict `json:"conflicts"`
}

// RoomBookingGroup collects double-booking conflicts for one room.
type RoomBookingGroup struct {
	Room      string            `json:"room"`
	Conflicts []BookingConflict `json:"conflicts"`
}

// TeacherBookingReport is the teacher double-booking check response.
type TeacherBookingReport struct {
	Conflicts []TeacherBookingGroup `json:"conflicts"`
	Message   string                `json:"message,omitempty"`
}

// RoomBookingReport is the room double-booking check response.
type RoomBookingReport struct {
	Conflicts []RoomBookingGroup `json:"conflicts"`
	Message   string             `json:"message,omitempty"`
}

// DuplicateGroup reports plannings sharing (formation, timeslot, section).
type DuplicateGroup struct {
	FormationID string   `json:"formation_id"`
	TimeSlotID  string   `json:"timeslot_id"`
	Section     string   `json:"section"`
	PlanningIDs []string `json:"planning_ids"`
	Count       int      `json:"count"`
}

// DuplicateReport is the duplicate-planning check response.
type DuplicateReport struct {
	Duplicates []DuplicateGroup `json:"duplicates"`
	Message    string           `json:"message,omitempty"`
}
