package repositories

import (
	"recruit_backend/internal/models"

	"gorm.io/gorm"
)

type EmployerRepository interface {
	Create(db *gorm.DB, employer *models.Employer) error
	FindByID(db *gorm.DB, id string) (*models.Employer, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Employer, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	IncrementTotalHires(db *gorm.DB, id string) error
}

type EmployerRepositoryImpl struct{}

func NewEmployerRepository() EmployerRepository {
	return &EmployerRepositoryImpl{}
}

func (r *EmployerRepositoryImpl) Create(db *gorm.DB, employer *models.Employer) error {
	return db.Create(employer).Error
}

func (r *EmployerRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Employer, error) {
	var employer models.Employer
	if err := db.First(&employer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrEmployerNotFound)
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Employer, error) {
	var employer models.Employer
	if err := db.Where("user_id = ?", userID).First(&employer).Error; err != nil {
		return nil, notFound(err, ErrEmployerNotFound)
	}
	return &employer, nil
}

func (r *EmployerRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&models.Employer{}).Where("id = ?", id).Updates(fields).Error
}

// IncrementTotalHires - атомарный +1 без чтения
func (r *EmployerRepositoryImpl) IncrementTotalHires(db *gorm.DB, id string) error {
	return db.Model(&models.Employer{}).
		Where("id = ?", id).
		UpdateColumn("total_hires", gorm.Expr("total_hires + ?", 1)).Error
}
