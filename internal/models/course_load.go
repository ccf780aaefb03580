package models

import "time"

// CourseLoad is a teaching assignment record: one teacher responsible for
// one module offering in a formation/section for an academic year. It is
// the denominator input to the surveillance workload ratio.
type CourseLoad struct {
	ID           string    `db:"id" json:"id"`
	TeacherCode  string    `db:"teacher_code" json:"teacher_code"`
	FormationID  *string   `db:"formation_id" json:"formation_id,omitempty"`
	Section      *string   `db:"section" json:"section,omitempty"`
	Group        *string   `db:"group_label" json:"group,omitempty"`
	Type         *string   `db:"type" json:"type,omitempty"`
	ModuleName   *string   `db:"module_name" json:"module_name,omitempty"`
	Semester     *string   `db:"semester" json:"semester,omitempty"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SemesterLabel returns the load's own semester label or an empty string.
// It is the fallback parity source when the formation link is absent.
func (c CourseLoad) SemesterLabel() string {
	if c.Semester == nil {
		return ""
	}
	return *c.Semester
}

// CourseLoadFilter restricts course load listings.
type CourseLoadFilter struct {
	TeacherCodes []string
	AcademicYear string
}
