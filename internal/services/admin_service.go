package services

import (
	"recruit_backend/internal/models"
	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(db *gorm.DB, query *dto.UserListQuery) (*dto.PaginatedResponse, error)
	SetUserActive(db *gorm.DB, caller *scope.Caller, userID string, active bool) (*models.User, error)
	// DecideDocument одобряет или отклоняет документ; работодатель верифицирован,
	// пока одобрен хотя бы один документ
	DecideDocument(db *gorm.DB, employerID, docID string, status models.DocumentStatus) (*models.Employer, error)
	GetPlatformStats(db *gorm.DB) (*dto.PlatformStats, error)
}

type AdminServiceImpl struct {
	userRepo      repositories.UserRepository
	employerRepo  repositories.EmployerRepository
	jobOrderRepo  repositories.JobOrderRepository
	appRepo       repositories.ApplicationRepository
	complaintRepo repositories.ComplaintRepository
}

func NewAdminService(
	userRepo repositories.UserRepository,
	employerRepo repositories.EmployerRepository,
	jobOrderRepo repositories.JobOrderRepository,
	appRepo repositories.ApplicationRepository,
	complaintRepo repositories.ComplaintRepository,
) AdminService {
	return &AdminServiceImpl{
		userRepo:      userRepo,
		employerRepo:  employerRepo,
		jobOrderRepo:  jobOrderRepo,
		appRepo:       appRepo,
		complaintRepo: complaintRepo,
	}
}

func (s *AdminServiceImpl) ListUsers(db *gorm.DB, query *dto.UserListQuery) (*dto.PaginatedResponse, error) {
	page := toPagination(query.ListQuery)
	users, total, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Role:       query.Role,
		IsActive:   query.IsActive,
		Search:     query.Search,
		Pagination: page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	return dto.NewPaginatedResponse(out, total, page.Page, page.PageSize), nil
}

func (s *AdminServiceImpl) SetUserActive(db *gorm.DB, caller *scope.Caller, userID string, active bool) (*models.User, error) {
	if caller != nil && caller.UserID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.SetActive(tx, userID, active); err != nil {
		return nil, handleRepoError(err)
	}
	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AdminServiceImpl) DecideDocument(db *gorm.DB, employerID, docID string, status models.DocumentStatus) (*models.Employer, error) {
	if status != models.DocumentStatusApproved && status != models.DocumentStatusRejected {
		return nil, apperrors.ValidationError(map[string]string{"status": "Must be one of: approved, rejected"})
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	employer, err := s.employerRepo.FindByID(tx, employerID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	found := false
	for i := range employer.VerificationDocs {
		if employer.VerificationDocs[i].ID == docID {
			employer.VerificationDocs[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrDocumentNotFound
	}
	employer.IsVerified = employer.HasApprovedDocument()

	err = s.employerRepo.UpdateFields(tx, employer.ID, map[string]interface{}{
		"verification_docs": datatypes.JSONSlice[models.VerificationDoc](employer.VerificationDocs),
		"is_verified":       employer.IsVerified,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return employer, nil
}

func (s *AdminServiceImpl) GetPlatformStats(db *gorm.DB) (*dto.PlatformStats, error) {
	users, err := s.userRepo.CountByRole(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobOrders, err := s.jobOrderRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	apps, err := s.appRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	complaints, err := s.complaintRepo.CountByStatus(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.PlatformStats{
		UsersByRole:         users,
		JobOrdersByStatus:   jobOrders,
		ApplicationsByStage: apps,
		ComplaintsByStatus:  complaints,
	}, nil
}
