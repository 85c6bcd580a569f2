package repositories

import (
	"strings"
	"time"

	"recruit_backend/internal/models"
	"recruit_backend/internal/scope"

	"gorm.io/gorm"
)

type JobOrderFilter struct {
	Status     models.JobOrderStatus
	EmployerID string
	Location   string
	Search     string
	Pagination
}

type JobOrderRepository interface {
	Create(db *gorm.DB, jobOrder *models.JobOrder) error
	// FindByID без проверки владельца (для откликов соискателей)
	FindByID(db *gorm.DB, id string) (*models.JobOrder, error)
	// FindManaged - только если caller владеет заявкой (или ADMIN)
	FindManaged(db *gorm.DB, caller *scope.Caller, id string) (*models.JobOrder, error)
	ListManaged(db *gorm.DB, caller *scope.Caller, filter JobOrderFilter) ([]models.JobOrder, int64, error)
	ListOpen(db *gorm.DB, filter JobOrderFilter) ([]models.JobOrder, int64, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	Delete(db *gorm.DB, id string) error
	ExpireDue(db *gorm.DB, now time.Time) (int64, error)
	CountByStatus(db *gorm.DB) (map[models.JobOrderStatus]int64, error)
}

type JobOrderRepositoryImpl struct{}

func NewJobOrderRepository() JobOrderRepository {
	return &JobOrderRepositoryImpl{}
}

func (r *JobOrderRepositoryImpl) Create(db *gorm.DB, jobOrder *models.JobOrder) error {
	return db.Create(jobOrder).Error
}

func (r *JobOrderRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobOrder, error) {
	var jobOrder models.JobOrder
	if err := db.Preload("Employer").First(&jobOrder, "job_orders.id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrJobOrderNotFound)
	}
	return &jobOrder, nil
}

func (r *JobOrderRepositoryImpl) FindManaged(db *gorm.DB, caller *scope.Caller, id string) (*models.JobOrder, error) {
	var jobOrder models.JobOrder
	err := db.Scopes(scope.ManagedJobOrders(caller)).
		Preload("Employer").
		Where("job_orders.id = ?", id).
		First(&jobOrder).Error
	if err != nil {
		return nil, notFound(err, ErrJobOrderNotFound)
	}
	return &jobOrder, nil
}

func (r *JobOrderRepositoryImpl) ListManaged(db *gorm.DB, caller *scope.Caller, filter JobOrderFilter) ([]models.JobOrder, int64, error) {
	query := applyJobOrderFilter(db.Model(&models.JobOrder{}).Scopes(scope.ManagedJobOrders(caller)), filter)
	return findJobOrders(query, filter.Pagination)
}

func (r *JobOrderRepositoryImpl) ListOpen(db *gorm.DB, filter JobOrderFilter) ([]models.JobOrder, int64, error) {
	filter.Status = models.JobOrderStatusActive
	query := applyJobOrderFilter(db.Model(&models.JobOrder{}), filter)
	return findJobOrders(query, filter.Pagination)
}

func (r *JobOrderRepositoryImpl) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&models.JobOrder{}).Where("id = ?", id).Updates(fields).Error
}

// Delete удаляет заявку вместе с откликами (каскад выполняется явно,
// чтобы не зависеть от ON DELETE CASCADE в конкретной СУБД)
func (r *JobOrderRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if err := db.Where("job_order_id = ?", id).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&models.JobOrder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobOrderNotFound
	}
	return nil
}

// ExpireDue переводит ACTIVE заявки с истекшим expires_at в EXPIRED
func (r *JobOrderRepositoryImpl) ExpireDue(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.JobOrder{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.JobOrderStatusActive, now).
		Updates(map[string]interface{}{
			"status":     models.JobOrderStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *JobOrderRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.JobOrderStatus]int64, error) {
	var rows []struct {
		Status models.JobOrderStatus
		Count  int64
	}
	err := db.Model(&models.JobOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.JobOrderStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func applyJobOrderFilter(query *gorm.DB, filter JobOrderFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("job_orders.status = ?", filter.Status)
	}
	if filter.EmployerID != "" {
		query = query.Where("job_orders.employer_id = ?", filter.EmployerID)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where("LOWER(job_orders.location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(job_orders.title) LIKE ? OR LOWER(job_orders.description) LIKE ?", like, like)
	}
	return query
}

func findJobOrders(query *gorm.DB, page Pagination) ([]models.JobOrder, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobOrders []models.JobOrder
	err := page.apply(query).
		Preload("Employer").
		Order("job_orders.created_at DESC").
		Find(&jobOrders).Error
	return jobOrders, total, err
}
