package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrEmployerNotFound     = errors.New("employer not found")
	ErrJobOrderNotFound     = errors.New("job order not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationExists    = errors.New("application already exists for this job order")
	ErrComplaintNotFound    = errors.New("complaint not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Pagination - параметры постраничной выборки
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) apply(db *gorm.DB) *gorm.DB {
	if p.PageSize <= 0 {
		return db
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	return db.Offset((page - 1) * p.PageSize).Limit(p.PageSize)
}

// notFound переводит gorm.ErrRecordNotFound в доменную ошибку репозитория
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
