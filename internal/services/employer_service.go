package services

import (
	"strings"
	"time"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmployerService interface {
	GetMe(db *gorm.DB, caller *scope.Caller) (*models.Employer, error)
	UpdateMe(db *gorm.DB, caller *scope.Caller, req *dto.UpdateEmployerRequest) (*models.Employer, error)
	AddDocument(db *gorm.DB, caller *scope.Caller, req *dto.AddDocumentRequest) (*models.Employer, error)
	GetDashboard(db *gorm.DB, caller *scope.Caller) (*dto.EmployerDashboard, error)
}

type EmployerServiceImpl struct {
	employerRepo repositories.EmployerRepository
	jobOrderRepo repositories.JobOrderRepository
	appRepo      repositories.ApplicationRepository
}

func NewEmployerService(
	employerRepo repositories.EmployerRepository,
	jobOrderRepo repositories.JobOrderRepository,
	appRepo repositories.ApplicationRepository,
) EmployerService {
	return &EmployerServiceImpl{
		employerRepo: employerRepo,
		jobOrderRepo: jobOrderRepo,
		appRepo:      appRepo,
	}
}

func (s *EmployerServiceImpl) GetMe(db *gorm.DB, caller *scope.Caller) (*models.Employer, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}
	employer, err := s.employerRepo.FindByID(db, caller.EmployerID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return employer, nil
}

func (s *EmployerServiceImpl) UpdateMe(db *gorm.DB, caller *scope.Caller, req *dto.UpdateEmployerRequest) (*models.Employer, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.CompanyName.Set {
		name := strings.TrimSpace(req.CompanyName.Value)
		if name == "" {
			return nil, apperrors.ValidationError(map[string]string{"company_name": "This field cannot be cleared"})
		}
		fields["company_name"] = name
	}
	for column, o := range map[string]dto.Optional[string]{
		"contact_person": req.ContactPerson,
		"phone":          req.Phone,
		"country":        req.Country,
	} {
		if o.Set {
			fields[column] = strings.TrimSpace(o.Value)
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.employerRepo.UpdateFields(tx, caller.EmployerID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	employer, err := s.employerRepo.FindByID(tx, caller.EmployerID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return employer, nil
}

// AddDocument регистрирует метаданные документа верификации (status=pending).
// Сам файл хранится вне системы.
func (s *EmployerServiceImpl) AddDocument(db *gorm.DB, caller *scope.Caller, req *dto.AddDocumentRequest) (*models.Employer, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	employer, err := s.employerRepo.FindByID(tx, caller.EmployerID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	employer.VerificationDocs = append(employer.VerificationDocs, models.VerificationDoc{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(req.Name),
		Status:     models.DocumentStatusPending,
		UploadedAt: time.Now().UTC(),
	})
	err = s.employerRepo.UpdateFields(tx, employer.ID, map[string]interface{}{
		"verification_docs": datatypes.JSONSlice[models.VerificationDoc](employer.VerificationDocs),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return employer, nil
}

// GetDashboard - воронка по всем вакансиям работодателя, пересчитывается на каждом чтении
func (s *EmployerServiceImpl) GetDashboard(db *gorm.DB, caller *scope.Caller) (*dto.EmployerDashboard, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}

	employer, err := s.employerRepo.FindByID(db, caller.EmployerID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	jobOrders, _, err := s.jobOrderRepo.ListManaged(db, caller, repositories.JobOrderFilter{})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	summaries, err := summarizeJobOrders(db, s.appRepo, jobOrders)
	if err != nil {
		return nil, err
	}

	dashboard := &dto.EmployerDashboard{
		Employer:          employer,
		JobOrdersByStatus: make(map[models.JobOrderStatus]int64),
		StatusCounts:      make(map[models.ApplicationStatus]int),
		JobOrders:         summaries,
	}
	var pipeline algorithms.Pipeline
	for _, summary := range summaries {
		dashboard.JobOrdersByStatus[summary.Status]++
		dashboard.TotalApplicants += summary.ApplicantCount
		dashboard.TotalSelected += summary.SelectedCount
		dashboard.TotalPositions += summary.Positions
		for status, n := range summary.StatusCounts {
			dashboard.StatusCounts[status] += n
		}
		pipeline.Add(summary.Pipeline)
	}
	dashboard.Pipeline = pipeline
	return dashboard, nil
}

// summarizeJobOrders считает показатели заполнения для набора вакансий одним запросом
func summarizeJobOrders(db *gorm.DB, appRepo repositories.ApplicationRepository, jobOrders []models.JobOrder) ([]dto.JobOrderSummary, error) {
	ids := make([]string, 0, len(jobOrders))
	for _, j := range jobOrders {
		ids = append(ids, j.ID)
	}
	statuses, err := appRepo.StatusesByJobOrder(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.JobOrderSummary, 0, len(jobOrders))
	for i := range jobOrders {
		j := &jobOrders[i]
		f := algorithms.ComputeFulfillment(j.Positions, statuses[j.ID])
		summaries = append(summaries, dto.JobOrderSummary{
			JobOrder:       j,
			FulfillmentDTO: dto.NewFulfillmentDTO(f),
		})
	}
	return summaries, nil
}
