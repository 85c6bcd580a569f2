package repositories

import (
	"recruit_backend/database"
	"recruit_backend/internal/models"
	"recruit_backend/internal/scope"

	"gorm.io/gorm"
)

type ApplicationFilter struct {
	Status     models.ApplicationStatus
	JobOrderID string
	Pagination
}

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	// FindScoped - отклик, если caller имеет к нему доступ; иначе ErrApplicationNotFound
	FindScoped(db *gorm.DB, caller *scope.Caller, id string) (*models.Application, error)
	ListForApplicant(db *gorm.DB, profileID string) ([]models.Application, error)
	ListCandidates(db *gorm.DB, jobOrderID string) ([]models.Application, error)
	ListScoped(db *gorm.DB, caller *scope.Caller, filter ApplicationFilter) ([]models.Application, int64, error)
	Save(db *gorm.DB, app *models.Application) error
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	// StatusesByJobOrder - статусы всех откликов для набора заявок
	StatusesByJobOrder(db *gorm.DB, jobOrderIDs []string) (map[string][]models.ApplicationStatus, error)
	CountByStatus(db *gorm.DB) (map[models.ApplicationStatus]int64, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindScoped(db *gorm.DB, caller *scope.Caller, id string) (*models.Application, error) {
	var app models.Application
	err := db.Scopes(scope.Applications(caller)).
		Preload("Applicant").
		Preload("JobOrder").
		Preload("JobOrder.Employer").
		Where("applications.id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, notFound(err, ErrApplicationNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) ListForApplicant(db *gorm.DB, profileID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("applicant_id = ?", profileID).
		Preload("JobOrder").
		Preload("JobOrder.Employer").
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListCandidates(db *gorm.DB, jobOrderID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Where("job_order_id = ?", jobOrderID).
		Preload("Applicant").
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListScoped(db *gorm.DB, caller *scope.Caller, filter ApplicationFilter) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{}).Scopes(scope.Applications(caller))
	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.JobOrderID != "" {
		query = query.Where("applications.job_order_id = ?", filter.JobOrderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := filter.Pagination.apply(query).
		Preload("Applicant").
		Preload("JobOrder").
		Order("applications.created_at DESC").
		Find(&apps).Error
	return apps, total, err
}

func (r *ApplicationRepositoryImpl) Save(db *gorm.DB, app *models.Application) error {
	return db.Omit("Applicant", "JobOrder").Save(app).Error
}

func (r *ApplicationRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&models.Application{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ApplicationRepositoryImpl) StatusesByJobOrder(db *gorm.DB, jobOrderIDs []string) (map[string][]models.ApplicationStatus, error) {
	out := make(map[string][]models.ApplicationStatus, len(jobOrderIDs))
	if len(jobOrderIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		JobOrderID string
		Status     models.ApplicationStatus
	}
	err := db.Model(&models.Application{}).
		Select("job_order_id, status").
		Where("job_order_id IN ?", jobOrderIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.JobOrderID] = append(out[row.JobOrderID], row.Status)
	}
	return out, nil
}

func (r *ApplicationRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	err := db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
