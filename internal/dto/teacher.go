package dto

// CreateTeacherRequest registers a teacher on the roster.
type CreateTeacherRequest struct {
	Code       string  `json:"code" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	FirstName  string  `json:"first_name"`
	Department *string `json:"department,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	Email1     *string `json:"email1,omitempty" validate:"omitempty,email"`
	Email2     *string `json:"email2,omitempty" validate:"omitempty,email"`
}

// SearchTeachersRequest is the posted roster search payload.
type SearchTeachersRequest struct {
	Query      string `json:"query"`
	Department string `json:"department"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// UpdateTeacherRequest edits a teacher's mutable fields.
type UpdateTeacherRequest struct {
	LastName   string  `json:"last_name" validate:"required"`
	FirstName  string  `json:"first_name"`
	Department *string `json:"department,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	Email1     *string `json:"email1,omitempty" validate:"omitempty,email"`
	Email2     *string `json:"email2,omitempty" validate:"omitempty,email"`
}
