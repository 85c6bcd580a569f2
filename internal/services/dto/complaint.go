package dto

import (
	"recruit_backend/internal/models"
)

type CreateComplaintRequest struct {
	Category    models.ComplaintCategory `json:"category" validate:"required,is-complaint-category"`
	Description string                   `json:"description" validate:"required,min=10,max=5000"`
}

// UpdateComplaintRequest - модерация жалобы администратором.
// Уровень эскалации только растет.
type UpdateComplaintRequest struct {
	Status          *models.ComplaintStatus `json:"status" validate:"omitempty,is-complaint-status"`
	EscalationLevel *int                    `json:"escalation_level" validate:"omitempty,min=1,max=5"`
	Resolution      *string                 `json:"resolution" validate:"omitempty,max=5000"`
}

type ComplaintListQuery struct {
	ListQuery
	Status   models.ComplaintStatus   `form:"status" validate:"omitempty,is-complaint-status"`
	Category models.ComplaintCategory `form:"category" validate:"omitempty,is-complaint-category"`
}
