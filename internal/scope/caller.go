// Package scope holds the per-request caller identity and the ownership
// predicates every repository query is filtered through.
package scope

import (
	"context"

	"recruit_backend/internal/models"
	"recruit_backend/pkg/contextkeys"

	"gorm.io/gorm"
)

// Caller - кто выполняет запрос. Строится middleware из JWT и БД,
// клиентские id никогда сюда не попадают.
type Caller struct {
	UserID     string
	Role       models.UserRole
	ProfileID  string // только для APPLICANT
	EmployerID string // только для EMPLOYER
}

func (c *Caller) IsAdmin() bool     { return c != nil && c.Role == models.UserRoleAdmin }
func (c *Caller) IsApplicant() bool { return c != nil && c.Role == models.UserRoleApplicant }
func (c *Caller) IsEmployer() bool  { return c != nil && c.Role == models.UserRoleEmployer }

// WithCaller кладет caller в context
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, contextkeys.CallerContextKey, c)
}

// FromContext достает caller из context
func FromContext(ctx context.Context) (*Caller, bool) {
	c, ok := ctx.Value(contextkeys.CallerContextKey).(*Caller)
	return c, ok && c != nil
}

// ============================================================================
// Предикаты владения (GORM scopes)
// ============================================================================

// none возвращает заведомо пустую выборку
func none(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// Applications ограничивает выборку откликов тем, что видит caller.
// Ожидает, что запрос идет по таблице applications.
func Applications(c *Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case c.IsAdmin():
			return db
		case c.IsApplicant() && c.ProfileID != "":
			return db.Where("applications.applicant_id = ?", c.ProfileID)
		case c.IsEmployer() && c.EmployerID != "":
			return db.Where("applications.job_order_id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).
					Model(&models.JobOrder{}).
					Select("id").
					Where("employer_id = ?", c.EmployerID),
			)
		default:
			return none(db)
		}
	}
}

// ManagedJobOrders - заявки, которыми caller управляет (свои для EMPLOYER, все для ADMIN)
func ManagedJobOrders(c *Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case c.IsAdmin():
			return db
		case c.IsEmployer() && c.EmployerID != "":
			return db.Where("job_orders.employer_id = ?", c.EmployerID)
		default:
			return none(db)
		}
	}
}

// Complaints - свои жалобы для APPLICANT, все для ADMIN
func Complaints(c *Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case c.IsAdmin():
			return db
		case c.IsApplicant() && c.ProfileID != "":
			return db.Where("complaints.profile_id = ?", c.ProfileID)
		default:
			return none(db)
		}
	}
}

// Notifications - только уведомления самого пользователя, включая ADMIN
func Notifications(c *Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c == nil || c.UserID == "" {
			return none(db)
		}
		return db.Where("notifications.user_id = ?", c.UserID)
	}
}
