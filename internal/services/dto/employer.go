package dto

import (
	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
)

type UpdateEmployerRequest struct {
	CompanyName   Optional[string] `json:"company_name" swaggertype:"string" validate:"omitempty,min=1,max=255"`
	ContactPerson Optional[string] `json:"contact_person" swaggertype:"string" validate:"omitempty,max=255"`
	Phone         Optional[string] `json:"phone" swaggertype:"string" validate:"omitempty,max=50"`
	Country       Optional[string] `json:"country" swaggertype:"string" validate:"omitempty,max=100"`
}

type AddDocumentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// EmployerDashboard - сводка по всем вакансиям работодателя
type EmployerDashboard struct {
	Employer          *models.Employer                 `json:"employer"`
	JobOrdersByStatus map[models.JobOrderStatus]int64  `json:"job_orders_by_status"`
	TotalApplicants   int                              `json:"total_applicants"`
	TotalSelected     int                              `json:"total_selected"`
	TotalPositions    int                              `json:"total_positions"`
	StatusCounts      map[models.ApplicationStatus]int `json:"status_counts"`
	Pipeline          algorithms.Pipeline              `json:"pipeline"`
	JobOrders         []JobOrderSummary                `json:"job_orders"`
}
