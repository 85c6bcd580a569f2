package dto

import (
	"recruit_backend/internal/models"
)

// UpdateApplicationStatusRequest - смена статуса отклика работодателем.
// Заметки и ссылка перезаписываются, если переданы.
type UpdateApplicationStatusRequest struct {
	Status            models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
	InterviewNotes    *string                  `json:"interview_notes" validate:"omitempty,max=10000"`
	VideoInterviewURL *string                  `json:"video_interview_url" validate:"omitempty,max=500"`
}

type ApplicationListQuery struct {
	ListQuery
	Status     models.ApplicationStatus `form:"status" validate:"omitempty,is-application-status"`
	JobOrderID string                   `form:"job_order_id"`
}

// MyApplicationDTO - отклик соискателя вместе с вакансией и компанией
type MyApplicationDTO struct {
	*models.Application
	CompanyName string `json:"company_name"`
}

type MatchScoreResponse struct {
	ApplicationID string   `json:"application_id"`
	Score         float64  `json:"ai_match_score"`
	Reasons       []string `json:"reasons"`
}
