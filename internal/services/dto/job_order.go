package dto

import (
	"encoding/json"
	"time"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
)

type CreateJobOrderRequest struct {
	Title        string          `json:"title" validate:"required,min=3,max=255"`
	Description  string          `json:"description" validate:"required"`
	Requirements json.RawMessage `json:"requirements" swaggertype:"object"`
	Salary       *float64        `json:"salary" validate:"omitempty,min=0"`
	Location     string          `json:"location" validate:"required,max=255"`
	Positions    int             `json:"positions" validate:"omitempty,min=1"`
	ExpiresAt    *time.Time      `json:"expires_at"`
}

// UpdateJobOrderRequest - частичное обновление вакансии
type UpdateJobOrderRequest struct {
	Title        Optional[string]                `json:"title" swaggertype:"string" validate:"omitempty,min=3,max=255"`
	Description  Optional[string]                `json:"description" swaggertype:"string"`
	Requirements Optional[json.RawMessage]       `json:"requirements" swaggertype:"object"`
	Salary       Optional[float64]               `json:"salary" swaggertype:"number" validate:"omitempty,min=0"`
	Location     Optional[string]                `json:"location" swaggertype:"string" validate:"omitempty,max=255"`
	Positions    Optional[int]                   `json:"positions" swaggertype:"integer" validate:"omitempty,min=1"`
	Status       Optional[models.JobOrderStatus] `json:"status" swaggertype:"string" validate:"omitempty,is-job-order-status"`
	ExpiresAt    Optional[time.Time]             `json:"expires_at" swaggertype:"string"`
}

type JobOrderListQuery struct {
	ListQuery
	Status   models.JobOrderStatus `form:"status" validate:"omitempty,is-job-order-status"`
	Location string                `form:"location"`
	Search   string                `form:"q"`
}

// FulfillmentDTO - производные показатели заполнения вакансии
type FulfillmentDTO struct {
	ApplicantCount int                              `json:"applicant_count"`
	StatusCounts   map[models.ApplicationStatus]int `json:"status_counts"`
	SelectedCount  int                              `json:"selected_count"`
	FillPercentage float64                          `json:"fill_percentage"`
	OverFilled     bool                             `json:"over_filled"`
	Pipeline       algorithms.Pipeline              `json:"pipeline"`
}

func NewFulfillmentDTO(f algorithms.Fulfillment) FulfillmentDTO {
	return FulfillmentDTO{
		ApplicantCount: f.ApplicantCount,
		StatusCounts:   f.StatusCounts,
		SelectedCount:  f.SelectedCount,
		FillPercentage: f.FillPercentage,
		OverFilled:     f.OverFilled,
		Pipeline:       f.Pipeline,
	}
}

// JobOrderSummary - вакансия в списке "мои вакансии"
type JobOrderSummary struct {
	*models.JobOrder
	FulfillmentDTO
}

// CandidateDTO - кандидат в карточке вакансии
type CandidateDTO struct {
	ApplicationID  string                   `json:"application_id"`
	Status         models.ApplicationStatus `json:"status"`
	AIMatchScore   *float64                 `json:"ai_match_score"`
	AppliedAt      time.Time                `json:"applied_at"`
	ProfileID      string                   `json:"profile_id"`
	FullName       string                   `json:"full_name"`
	Nationality    string                   `json:"nationality"`
	TrustScore     int                      `json:"trust_score"`
	Completion     int                      `json:"completion"`
	InterviewNotes string                   `json:"interview_notes,omitempty"`
}

// JobOrderDetails - вакансия с кандидатами и показателями заполнения
type JobOrderDetails struct {
	*models.JobOrder
	FulfillmentDTO
	Candidates []CandidateDTO `json:"candidates"`
}

// OpenJobOrderDTO - публичная карточка открытой вакансии
type OpenJobOrderDTO struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Requirements json.RawMessage `json:"requirements" swaggertype:"object"`
	Salary       *float64        `json:"salary"`
	Location     string          `json:"location"`
	Positions    int             `json:"positions"`
	ExpiresAt    *time.Time      `json:"expires_at"`
	CreatedAt    time.Time       `json:"created_at"`
	CompanyName  string          `json:"company_name"`
	IsVerified   bool            `json:"employer_verified"`
}

func NewOpenJobOrderDTO(j *models.JobOrder) OpenJobOrderDTO {
	out := OpenJobOrderDTO{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Requirements: json.RawMessage(j.Requirements),
		Salary:       j.Salary,
		Location:     j.Location,
		Positions:    j.Positions,
		ExpiresAt:    j.ExpiresAt,
		CreatedAt:    j.CreatedAt,
	}
	if len(out.Requirements) == 0 {
		out.Requirements = nil
	}
	if j.Employer != nil {
		out.CompanyName = j.Employer.CompanyName
		out.IsVerified = j.Employer.IsVerified
	}
	return out
}
