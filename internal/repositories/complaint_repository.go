package repositories

import (
	"recruit_backend/internal/models"
	"recruit_backend/internal/scope"

	"gorm.io/gorm"
)

type ComplaintFilter struct {
	Status   models.ComplaintStatus
	Category models.ComplaintCategory
	Pagination
}

type ComplaintRepository interface {
	Create(db *gorm.DB, complaint *models.Complaint) error
	FindScoped(db *gorm.DB, caller *scope.Caller, id string) (*models.Complaint, error)
	ListScoped(db *gorm.DB, caller *scope.Caller, filter ComplaintFilter) ([]models.Complaint, int64, error)
	Save(db *gorm.DB, complaint *models.Complaint) error
	CountByStatus(db *gorm.DB) (map[models.ComplaintStatus]int64, error)
}

type ComplaintRepositoryImpl struct{}

func NewComplaintRepository() ComplaintRepository {
	return &ComplaintRepositoryImpl{}
}

func (r *ComplaintRepositoryImpl) Create(db *gorm.DB, complaint *models.Complaint) error {
	return db.Create(complaint).Error
}

func (r *ComplaintRepositoryImpl) FindScoped(db *gorm.DB, caller *scope.Caller, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := db.Scopes(scope.Complaints(caller)).
		Where("complaints.id = ?", id).
		First(&complaint).Error
	if err != nil {
		return nil, notFound(err, ErrComplaintNotFound)
	}
	return &complaint, nil
}

func (r *ComplaintRepositoryImpl) ListScoped(db *gorm.DB, caller *scope.Caller, filter ComplaintFilter) ([]models.Complaint, int64, error) {
	query := db.Model(&models.Complaint{}).Scopes(scope.Complaints(caller))
	if filter.Status != "" {
		query = query.Where("complaints.status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("complaints.category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var complaints []models.Complaint
	err := filter.Pagination.apply(query).
		Order("complaints.escalation_level DESC, complaints.created_at DESC").
		Find(&complaints).Error
	return complaints, total, err
}

func (r *ComplaintRepositoryImpl) Save(db *gorm.DB, complaint *models.Complaint) error {
	return db.Omit("Profile").Save(complaint).Error
}

func (r *ComplaintRepositoryImpl) CountByStatus(db *gorm.DB) (map[models.ComplaintStatus]int64, error) {
	var rows []struct {
		Status models.ComplaintStatus
		Count  int64
	}
	err := db.Model(&models.Complaint{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.ComplaintStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
