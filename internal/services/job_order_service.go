package services

import (
	"context"
	"strings"
	"time"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/events"
	"recruit_backend/internal/logger"
	"recruit_backend/internal/models"
	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobOrderService interface {
	CreateJobOrder(db *gorm.DB, caller *scope.Caller, req *dto.CreateJobOrderRequest) (*dto.JobOrderDetails, error)
	// GetJobOrder - вакансия вместе с кандидатами и показателями заполнения
	GetJobOrder(db *gorm.DB, caller *scope.Caller, id string) (*dto.JobOrderDetails, error)
	ListManaged(db *gorm.DB, caller *scope.Caller, query *dto.JobOrderListQuery) (*dto.PaginatedResponse, error)
	ListOpen(db *gorm.DB, query *dto.JobOrderListQuery) (*dto.PaginatedResponse, error)
	UpdateJobOrder(db *gorm.DB, caller *scope.Caller, id string, req *dto.UpdateJobOrderRequest) (*dto.JobOrderDetails, error)
	DeleteJobOrder(db *gorm.DB, caller *scope.Caller, id string) error
	// ExpireDue переводит просроченные ACTIVE вакансии в EXPIRED
	ExpireDue(ctx context.Context, db *gorm.DB, now time.Time) (int64, error)
}

type JobOrderServiceImpl struct {
	jobOrderRepo repositories.JobOrderRepository
	appRepo      repositories.ApplicationRepository
	publisher    events.Publisher
}

func NewJobOrderService(
	jobOrderRepo repositories.JobOrderRepository,
	appRepo repositories.ApplicationRepository,
	publisher events.Publisher,
) JobOrderService {
	return &JobOrderServiceImpl{
		jobOrderRepo: jobOrderRepo,
		appRepo:      appRepo,
		publisher:    publisher,
	}
}

func (s *JobOrderServiceImpl) CreateJobOrder(db *gorm.DB, caller *scope.Caller, req *dto.CreateJobOrderRequest) (*dto.JobOrderDetails, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}

	details := map[string]string{}
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.Location)
	if title == "" {
		details["title"] = "This field is required"
	}
	if description == "" {
		details["description"] = "This field is required"
	}
	if location == "" {
		details["location"] = "This field is required"
	}
	if req.Positions < 0 {
		details["positions"] = "Must be at least 1"
	}
	if len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	requirements, err := jsonObject("requirements", req.Requirements)
	if err != nil {
		return nil, err
	}
	positions := req.Positions
	if positions == 0 {
		positions = 1
	}

	jobOrder := &models.JobOrder{
		EmployerID:   caller.EmployerID,
		Title:        title,
		Description:  description,
		Requirements: requirements,
		Salary:       req.Salary,
		Location:     location,
		Positions:    positions,
		Status:       models.JobOrderStatusActive,
		ExpiresAt:    req.ExpiresAt,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.jobOrderRepo.Create(tx, jobOrder); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobOrderDetails{
		JobOrder:       jobOrder,
		FulfillmentDTO: dto.NewFulfillmentDTO(algorithms.ComputeFulfillment(jobOrder.Positions, nil)),
		Candidates:     []dto.CandidateDTO{},
	}, nil
}

func (s *JobOrderServiceImpl) GetJobOrder(db *gorm.DB, caller *scope.Caller, id string) (*dto.JobOrderDetails, error) {
	if err := requireReader(caller); err != nil {
		return nil, err
	}
	jobOrder, err := s.jobOrderRepo.FindManaged(db, caller, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return s.details(db, jobOrder)
}

func (s *JobOrderServiceImpl) ListManaged(db *gorm.DB, caller *scope.Caller, query *dto.JobOrderListQuery) (*dto.PaginatedResponse, error) {
	if err := requireReader(caller); err != nil {
		return nil, err
	}
	page := toPagination(query.ListQuery)
	jobOrders, total, err := s.jobOrderRepo.ListManaged(db, caller, repositories.JobOrderFilter{
		Status:     query.Status,
		Location:   query.Location,
		Search:     query.Search,
		Pagination: page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	summaries, err := summarizeJobOrders(db, s.appRepo, jobOrders)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginatedResponse(summaries, total, page.Page, page.PageSize), nil
}

func (s *JobOrderServiceImpl) ListOpen(db *gorm.DB, query *dto.JobOrderListQuery) (*dto.PaginatedResponse, error) {
	page := toPagination(query.ListQuery)
	jobOrders, total, err := s.jobOrderRepo.ListOpen(db, repositories.JobOrderFilter{
		Location:   query.Location,
		Search:     query.Search,
		Pagination: page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.OpenJobOrderDTO, 0, len(jobOrders))
	for i := range jobOrders {
		out = append(out, dto.NewOpenJobOrderDTO(&jobOrders[i]))
	}
	return dto.NewPaginatedResponse(out, total, page.Page, page.PageSize), nil
}

// UpdateJobOrder - частичное обновление. Обязательные поля нельзя очистить через null.
func (s *JobOrderServiceImpl) UpdateJobOrder(db *gorm.DB, caller *scope.Caller, id string, req *dto.UpdateJobOrderRequest) (*dto.JobOrderDetails, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}
	fields, err := jobOrderUpdateFields(req)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.jobOrderRepo.FindManaged(tx, caller, id); err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.jobOrderRepo.UpdateFields(tx, id, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	jobOrder, err := s.jobOrderRepo.FindManaged(tx, caller, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	details, err := s.details(tx, jobOrder)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return details, nil
}

// DeleteJobOrder удаляет вакансию вместе с откликами
func (s *JobOrderServiceImpl) DeleteJobOrder(db *gorm.DB, caller *scope.Caller, id string) error {
	if err := requireEmployer(caller); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.jobOrderRepo.FindManaged(tx, caller, id); err != nil {
		return handleRepoError(err)
	}
	if err := s.jobOrderRepo.Delete(tx, id); err != nil {
		return handleRepoError(err)
	}
	return tx.Commit().Error
}

func (s *JobOrderServiceImpl) ExpireDue(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	expired, err := s.jobOrderRepo.ExpireDue(tx, now)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return 0, apperrors.InternalError(err)
	}

	if expired > 0 {
		logger.CtxInfo(ctx, "Job orders expired", "count", expired)
		events.Emit(ctx, s.publisher, events.SubjectJobOrdersExpired, events.JobOrdersExpired{Count: expired})
	}
	return expired, nil
}

func (s *JobOrderServiceImpl) details(db *gorm.DB, jobOrder *models.JobOrder) (*dto.JobOrderDetails, error) {
	apps, err := s.appRepo.ListCandidates(db, jobOrder.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	statuses := make([]models.ApplicationStatus, 0, len(apps))
	candidates := make([]dto.CandidateDTO, 0, len(apps))
	for i := range apps {
		app := &apps[i]
		statuses = append(statuses, app.Status)
		candidate := dto.CandidateDTO{
			ApplicationID:  app.ID,
			Status:         app.Status,
			AIMatchScore:   app.AIMatchScore,
			AppliedAt:      app.CreatedAt,
			ProfileID:      app.ApplicantID,
			InterviewNotes: app.InterviewNotes,
		}
		if app.Applicant != nil {
			candidate.FullName = app.Applicant.FullName()
			candidate.Nationality = app.Applicant.Nationality
			candidate.TrustScore = app.Applicant.TrustScore
			candidate.Completion = algorithms.ProfileCompletion(app.Applicant)
		}
		candidates = append(candidates, candidate)
	}

	return &dto.JobOrderDetails{
		JobOrder:       jobOrder,
		FulfillmentDTO: dto.NewFulfillmentDTO(algorithms.ComputeFulfillment(jobOrder.Positions, statuses)),
		Candidates:     candidates,
	}, nil
}

func jobOrderUpdateFields(req *dto.UpdateJobOrderRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	details := map[string]string{}

	required := func(column string, o dto.Optional[string]) {
		if !o.Set {
			return
		}
		v := strings.TrimSpace(o.Value)
		if v == "" {
			details[column] = "This field cannot be cleared"
			return
		}
		fields[column] = v
	}
	required("title", req.Title)
	required("description", req.Description)
	required("location", req.Location)

	if req.Positions.Set {
		if req.Positions.Null || req.Positions.Value < 1 {
			details["positions"] = "Must be at least 1"
		} else {
			fields["positions"] = req.Positions.Value
		}
	}
	if req.Status.Set {
		if req.Status.Null || !req.Status.Value.IsValid() {
			details["status"] = "Must be a valid job order status"
		} else {
			fields["status"] = req.Status.Value
		}
	}
	if req.Salary.Set {
		if req.Salary.Null {
			fields["salary"] = nil
		} else {
			fields["salary"] = req.Salary.Value
		}
	}
	if req.ExpiresAt.Set {
		if req.ExpiresAt.Null {
			fields["expires_at"] = nil
		} else {
			fields["expires_at"] = req.ExpiresAt.Value
		}
	}
	if len(details) > 0 {
		return nil, apperrors.ValidationError(details)
	}

	if req.Requirements.Set {
		requirements, err := jsonObject("requirements", req.Requirements.Value)
		if err != nil {
			return nil, err
		}
		if requirements == nil {
			fields["requirements"] = nil
		} else {
			fields["requirements"] = requirements
		}
	}
	return fields, nil
}
