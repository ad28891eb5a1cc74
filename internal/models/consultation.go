package models

import "time"

// Industry is the optional industry category of a lead.
type Industry string

// Industry constants
const (
	IndustryManufacturing Industry = "manufacturing"
	IndustryConstruction  Industry = "construction"
	IndustryEnergy        Industry = "energy"
	IndustryChemical      Industry = "chemical"
	IndustryFood          Industry = "food"
	IndustryOther         Industry = "other"
)

// ProjectType is the kind of project a lead is asking about.
type ProjectType string

// ProjectType constants
const (
	ProjectEnergyEfficiency    ProjectType = "energy_efficiency"
	ProjectPlasticRecycling    ProjectType = "plastic_recycling"
	ProjectCarbonCapture       ProjectType = "carbon_capture"
	ProjectProductionLine      ProjectType = "production_line"
	ProjectWasteTransformation ProjectType = "waste_transformation"
)

// Consultation status constants
const (
	StatusPending = "pending"
)

// ConsultationCreate is the body of POST /api/consultation
type ConsultationCreate struct {
	CompanyName   string      `json:"company_name" binding:"required"`
	ContactName   string      `json:"contact_name" binding:"required"`
	Email         string      `json:"email" binding:"required,email"`
	Phone         string      `json:"phone" binding:"required"`
	Industry      Industry    `json:"industry" binding:"omitempty,oneof=manufacturing construction energy chemical food other"`
	ProjectType   ProjectType `json:"project_type" binding:"required,oneof=energy_efficiency plastic_recycling carbon_capture production_line waste_transformation"`
	Message       string      `json:"message,omitempty"`
	PreferredDate string      `json:"preferred_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// ConsultationRequest represents a stored lead-capture submission
type ConsultationRequest struct {
	ID string `json:"id" db:"id"` // UUID

	CompanyName string      `json:"company_name" db:"company_name"`
	ContactName string      `json:"contact_name" db:"contact_name"`
	Email       string      `json:"email" db:"email"`
	Phone       string      `json:"phone" db:"phone"`
	Industry    Industry    `json:"industry" db:"industry"`
	ProjectType ProjectType `json:"project_type" db:"project_type"`

	Message       string `json:"message,omitempty" db:"message"`
	PreferredDate string `json:"preferred_date,omitempty" db:"preferred_date"` // YYYY-MM-DD

	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ConsultationsResponse represents a paginated response of consultation requests
type ConsultationsResponse struct {
	Data       []ConsultationRequest `json:"data"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}
