package dto

// CreateTimeSlotRequest registers a (date, time, room) triple.
type CreateTimeSlotRequest struct {
	ExamDate  string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required"`
	Room      string `json:"room" validate:"required"`
}

// CreateCourseLoadRequest registers a teaching assignment record.
type CreateCourseLoadRequest struct {
	TeacherCode  string  `json:"teacher_code" validate:"required"`
	FormationID  *string `json:"formation_id,omitempty"`
	Section      *string `json:"section,omitempty"`
	Group        *string `json:"group,omitempty"`
	Type         *string `json:"type,omitempty"`
	ModuleName   *string `json:"module_name,omitempty"`
	Semester     *string `json:"semester,omitempty"`
	AcademicYear string  `json:"academic_year" validate:"required"`
}
