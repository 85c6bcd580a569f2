package services

import (
	"strings"

	"recruit_backend/internal/models"
	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ComplaintService interface {
	CreateComplaint(db *gorm.DB, caller *scope.Caller, req *dto.CreateComplaintRequest) (*models.Complaint, error)
	// ListComplaints - свои жалобы для соискателя, все для администратора
	ListComplaints(db *gorm.DB, caller *scope.Caller, query *dto.ComplaintListQuery) (*dto.PaginatedResponse, error)
	UpdateComplaint(db *gorm.DB, caller *scope.Caller, id string, req *dto.UpdateComplaintRequest) (*models.Complaint, error)
}

type ComplaintServiceImpl struct {
	complaintRepo    repositories.ComplaintRepository
	profileRepo      repositories.ProfileRepository
	notificationRepo repositories.NotificationRepository
}

func NewComplaintService(
	complaintRepo repositories.ComplaintRepository,
	profileRepo repositories.ProfileRepository,
	notificationRepo repositories.NotificationRepository,
) ComplaintService {
	return &ComplaintServiceImpl{
		complaintRepo:    complaintRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *ComplaintServiceImpl) CreateComplaint(db *gorm.DB, caller *scope.Caller, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	if err := requireApplicant(caller); err != nil {
		return nil, err
	}
	if !req.Category.IsValid() {
		return nil, apperrors.ValidationError(map[string]string{"category": "Must be a valid complaint category"})
	}

	complaint := &models.Complaint{
		ProfileID:       caller.ProfileID,
		Category:        req.Category,
		Description:     strings.TrimSpace(req.Description),
		Status:          models.ComplaintStatusOpen,
		EscalationLevel: 1,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.complaintRepo.Create(tx, complaint); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return complaint, nil
}

func (s *ComplaintServiceImpl) ListComplaints(db *gorm.DB, caller *scope.Caller, query *dto.ComplaintListQuery) (*dto.PaginatedResponse, error) {
	page := toPagination(query.ListQuery)
	complaints, total, err := s.complaintRepo.ListScoped(db, caller, repositories.ComplaintFilter{
		Status:     query.Status,
		Category:   query.Category,
		Pagination: page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(complaints, total, page.Page, page.PageSize), nil
}

// UpdateComplaint - модерация. Уровень эскалации не понижается.
func (s *ComplaintServiceImpl) UpdateComplaint(db *gorm.DB, caller *scope.Caller, id string, req *dto.UpdateComplaintRequest) (*models.Complaint, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	complaint, err := s.complaintRepo.FindScoped(tx, caller, id)
	if err != nil {
		return nil, handleRepoError(err)
	}

	changed := false
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ValidationError(map[string]string{"status": "Must be a valid complaint status"})
		}
		changed = changed || complaint.Status != *req.Status
		complaint.Status = *req.Status
	}
	if req.EscalationLevel != nil {
		if *req.EscalationLevel < complaint.EscalationLevel {
			return nil, apperrors.ErrInvalidOperation("complaint", "Escalation level cannot be lowered")
		}
		changed = changed || complaint.EscalationLevel != *req.EscalationLevel
		complaint.EscalationLevel = *req.EscalationLevel
	}
	if req.Resolution != nil {
		complaint.Resolution = strings.TrimSpace(*req.Resolution)
	}

	if err := s.complaintRepo.Save(tx, complaint); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if changed {
		profile, err := s.profileRepo.FindByID(tx, complaint.ProfileID)
		if err != nil {
			return nil, handleRepoError(err)
		}
		if err := s.notificationRepo.CreateComplaintUpdateNotification(tx, profile.UserID, complaint); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return complaint, nil
}
