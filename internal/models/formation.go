package models

import "time"

// Formation identifies a program/specialty/section grouping that owns
// course offerings and exam plannings.
type Formation struct {
	ID         string    `db:"id" json:"id"`
	Domain     *string   `db:"domain" json:"domain,omitempty"`
	Program    *string   `db:"program" json:"program,omitempty"`
	Level      *string   `db:"level" json:"level,omitempty"`
	Specialty  *string   `db:"specialty" json:"specialty,omitempty"`
	Sections   *int      `db:"sections" json:"sections,omitempty"`
	Groups     *int      `db:"groups" json:"groups,omitempty"`
	Semester   *string   `db:"semester" json:"semester,omitempty"`
	ModuleName *string   `db:"module_name" json:"module_name,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// SemesterLabel returns the raw semester label or an empty string.
func (f Formation) SemesterLabel() string {
	if f.Semester == nil {
		return ""
	}
	return *f.Semester
}
