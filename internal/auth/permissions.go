package auth

import "recruit_backend/internal/models"

// Разрешения по ролям
const (
	PermApply           = "applications:apply"
	PermReadOwnApps     = "applications:read:self"
	PermManagePipeline  = "applications:manage"
	PermEditProfile     = "profile:write:self"
	PermManageJobOrders = "job_orders:manage"
	PermFileComplaint   = "complaints:create"
	PermModerate        = "complaints:moderate"
	PermAdminister      = "system:admin"
)

var Permissions = map[models.UserRole][]string{
	models.UserRoleApplicant: {
		PermApply,
		PermReadOwnApps,
		PermEditProfile,
		PermFileComplaint,
	},
	models.UserRoleEmployer: {
		PermManagePipeline,
		PermManageJobOrders,
	},
	models.UserRoleAdmin: {
		PermModerate,
		PermAdminister,
	},
}

// HasPermission проверяет есть ли у роли указанное разрешение
func HasPermission(role models.UserRole, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
