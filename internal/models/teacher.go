package models

import "time"

// Teacher represents an instructor eligible for exam invigilation.
// The faculty-wide teacher code is the natural identity.
type Teacher struct {
	Code       string    `db:"code" json:"code"`
	LastName   string    `db:"last_name" json:"last_name"`
	FirstName  string    `db:"first_name" json:"first_name"`
	Department *string   `db:"department" json:"department,omitempty"`
	Grade      *string   `db:"grade" json:"grade,omitempty"`
	Email1     *string   `db:"email1" json:"email1,omitempty"`
	Email2     *string   `db:"email2" json:"email2,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name, falling back to the code when both are empty.
func (t Teacher) FullName() string {
	switch {
	case t.FirstName != "" && t.LastName != "":
		return t.FirstName + " " + t.LastName
	case t.LastName != "":
		return t.LastName
	case t.FirstName != "":
		return t.FirstName
	default:
		return t.Code
	}
}

// PrimaryEmail returns the first configured address, if any.
func (t Teacher) PrimaryEmail() string {
	if t.Email1 != nil && *t.Email1 != "" {
		return *t.Email1
	}
	if t.Email2 != nil && *t.Email2 != "" {
		return *t.Email2
	}
	return ""
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search     string
	Department string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
