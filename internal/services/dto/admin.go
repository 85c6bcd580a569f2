package dto

import (
	"recruit_backend/internal/models"
)

type UserListQuery struct {
	ListQuery
	Role     models.UserRole `form:"role" validate:"omitempty,oneof=APPLICANT EMPLOYER ADMIN"`
	IsActive *bool           `form:"is_active"`
	Search   string          `form:"q"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type DocumentDecisionRequest struct {
	Status models.DocumentStatus `json:"status" validate:"required,is-document-status"`
}

// PlatformStats - агрегаты для админ-панели
type PlatformStats struct {
	UsersByRole         map[models.UserRole]int64          `json:"users_by_role"`
	JobOrdersByStatus   map[models.JobOrderStatus]int64    `json:"job_orders_by_status"`
	ApplicationsByStage map[models.ApplicationStatus]int64 `json:"applications_by_status"`
	ComplaintsByStatus  map[models.ComplaintStatus]int64   `json:"complaints_by_status"`
}

type ExpireJobOrdersResponse struct {
	Expired int64 `json:"expired"`
}
