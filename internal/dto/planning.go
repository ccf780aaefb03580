package dto

// InvigilatorInput is one teacher entry when creating or replacing a
// planning's invigilator set.
type InvigilatorInput struct {
	TeacherCode string `json:"teacher_code" validate:"required"`
	IsLead      bool   `json:"is_lead"`
}

// CreatePlanningRequest creates a planning together with its invigilators.
type CreatePlanningRequest struct {
	FormationID          string             `json:"formation_id" validate:"required"`
	TimeSlotID           string             `json:"timeslot_id" validate:"required"`
	Section              string             `json:"section" validate:"required"`
	Session              string             `json:"session"`
	RequiredInvigilators int                `json:"required_invigilators" validate:"gte=0"`
	Invigilators         []InvigilatorInput `json:"invigilators" validate:"required,min=1,dive"`
}

// UpdatePlanningRequest replaces a planning's fields and its entire
// invigilator set.
type UpdatePlanningRequest struct {
	FormationID          *string            `json:"formation_id,omitempty"`
	TimeSlotID           *string            `json:"timeslot_id,omitempty"`
	Section              *string            `json:"section,omitempty"`
	Session              *string            `json:"session,omitempty"`
	RequiredInvigilators *int               `json:"required_invigilators,omitempty" validate:"omitempty,gte=0"`
	Invigilators         []InvigilatorInput `json:"invigilators" validate:"required,min=1,dive"`
}

// PlanningResponse is one planning with its joined schedule and formation.
type PlanningResponse struct {
	ID                   string             `json:"id"`
	Section              string             `json:"section"`
	Session              string             `json:"session"`
	RequiredInvigilators int                `json:"required_invigilators"`
	TimeSlot             *TimeSlotResponse  `json:"timeslot,omitempty"`
	Formation            *FormationResponse `json:"formation,omitempty"`
}

// TimeSlotResponse is the joined timeslot projection.
type TimeSlotResponse struct {
	ID       string `json:"id"`
	ExamDate string `json:"exam_date"`
	Time     string `json:"time"`
	Room     string `json:"room"`
}

// FormationResponse is the joined formation projection.
type FormationResponse struct {
	ID       string `json:"id"`
	Program  string `json:"program,omitempty"`
	Level    string `json:"level,omitempty"`
	Semester string `json:"semester,omitempty"`
	Module   string `json:"module,omitempty"`
}
