package services

import (
	"context"
	"errors"
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

type ApplicationService interface {
	// Apply создает отклик текущего соискателя на ACTIVE вакансию
	Apply(ctx context.Context, db *gorm.DB, caller *scope.Caller, jobOrderID string) (*models.Application, error)
	ListMyApplications(db *gorm.DB, caller *scope.Caller) ([]dto.MyApplicationDTO, error)
	ListApplications(db *gorm.DB, caller *scope.Caller, query *dto.ApplicationListQuery) (*dto.PaginatedResponse, error)
	GetApplication(db *gorm.DB, caller *scope.Caller, id string) (*models.Application, error)
	// UpdateStatus - переход по воронке; вехи пишутся только один раз
	UpdateStatus(ctx context.Context, db *gorm.DB, caller *scope.Caller, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error)
	RecomputeMatchScore(db *gorm.DB, caller *scope.Caller, id string) (*dto.MatchScoreResponse, error)
	Policy() algorithms.TransitionPolicy
}

type ApplicationServiceImpl struct {
	appRepo          repositories.ApplicationRepository
	jobOrderRepo     repositories.JobOrderRepository
	employerRepo     repositories.EmployerRepository
	notificationRepo repositories.NotificationRepository
	publisher        events.Publisher
	policy           algorithms.TransitionPolicy
	now              func() time.Time
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobOrderRepo repositories.JobOrderRepository,
	employerRepo repositories.EmployerRepository,
	notificationRepo repositories.NotificationRepository,
	publisher events.Publisher,
	policy algorithms.TransitionPolicy,
) ApplicationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ApplicationServiceImpl{
		appRepo:          appRepo,
		jobOrderRepo:     jobOrderRepo,
		employerRepo:     employerRepo,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		policy:           policy,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApplicationServiceImpl) Policy() algorithms.TransitionPolicy {
	return s.policy
}

// Apply: дубликат ловит уникальный индекс (applicant_id, job_order_id) при вставке,
// а не предварительная проверка, поэтому гонка двух одновременных откликов безопасна.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, caller *scope.Caller, jobOrderID string) (*models.Application, error) {
	if err := requireApplicant(caller); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	jobOrder, err := s.jobOrderRepo.FindByID(tx, jobOrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobOrderNotFound) {
			return nil, apperrors.ErrJobOrderNotActive
		}
		return nil, apperrors.InternalError(err)
	}
	if jobOrder.Status != models.JobOrderStatusActive {
		return nil, apperrors.ErrJobOrderNotActive
	}

	app := &models.Application{
		ApplicantID: caller.ProfileID,
		JobOrderID:  jobOrder.ID,
		Status:      models.ApplicationStatusApplied,
	}
	if err := s.appRepo.Create(tx, app); err != nil {
		return nil, handleRepoError(err)
	}

	if jobOrder.Employer != nil {
		if err := s.notificationRepo.CreateNewApplicationNotification(tx, jobOrder.Employer.UserID, app, jobOrder.Title); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleRepoError(err)
	}

	logger.CtxInfo(ctx, "Application created", "application_id", app.ID, "job_order_id", app.JobOrderID)
	events.Emit(ctx, s.publisher, events.SubjectApplicationCreated, events.ApplicationCreated{
		ApplicationID: app.ID,
		JobOrderID:    app.JobOrderID,
		ApplicantID:   app.ApplicantID,
	})
	return app, nil
}

func (s *ApplicationServiceImpl) ListMyApplications(db *gorm.DB, caller *scope.Caller) ([]dto.MyApplicationDTO, error) {
	if err := requireApplicant(caller); err != nil {
		return nil, err
	}
	apps, err := s.appRepo.ListForApplicant(db, caller.ProfileID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.MyApplicationDTO, 0, len(apps))
	for i := range apps {
		item := dto.MyApplicationDTO{Application: &apps[i]}
		if apps[i].JobOrder != nil && apps[i].JobOrder.Employer != nil {
			item.CompanyName = apps[i].JobOrder.Employer.CompanyName
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ApplicationServiceImpl) ListApplications(db *gorm.DB, caller *scope.Caller, query *dto.ApplicationListQuery) (*dto.PaginatedResponse, error) {
	page := toPagination(query.ListQuery)
	apps, total, err := s.appRepo.ListScoped(db, caller, repositories.ApplicationFilter{
		Status:     query.Status,
		JobOrderID: query.JobOrderID,
		Pagination: page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPaginatedResponse(apps, total, page.Page, page.PageSize), nil
}

func (s *ApplicationServiceImpl) GetApplication(db *gorm.DB, caller *scope.Caller, id string) (*models.Application, error) {
	app, err := s.appRepo.FindScoped(db, caller, id)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return app, nil
}

func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, caller *scope.Caller, id string, req *dto.UpdateApplicationStatusRequest) (*models.Application, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, apperrors.ErrInvalidApplicationStatus
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// Чужой отклик отфильтровывается предикатом владения и выглядит как несуществующий
	app, err := s.appRepo.FindScoped(tx, caller, id)
	if err != nil {
		return nil, handleRepoError(err)
	}

	from := app.Status
	if !s.policy.CanTransition(from, req.Status) {
		return nil, apperrors.ErrTransitionNotAllowed.WithDetails(map[string]interface{}{
			"from":    from,
			"to":      req.Status,
			"allowed": s.policy.AllowedTargets(from),
		})
	}

	now := s.now()
	deployedBefore := app.DeployedAt != nil
	app.Status = req.Status
	algorithms.StampMilestone(app, req.Status, now)
	if req.InterviewNotes != nil {
		app.InterviewNotes = *req.InterviewNotes
	}
	if req.VideoInterviewURL != nil {
		app.VideoInterviewURL = strings.TrimSpace(*req.VideoInterviewURL)
	}

	if err := s.appRepo.Save(tx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !deployedBefore && app.DeployedAt != nil && app.JobOrder != nil {
		if err := s.employerRepo.IncrementTotalHires(tx, app.JobOrder.EmployerID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if from != app.Status && app.Applicant != nil {
		title := ""
		if app.JobOrder != nil {
			title = app.JobOrder.Title
		}
		if err := s.notificationRepo.CreateApplicationStatusNotification(tx, app.Applicant.UserID, app, title); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Application status updated",
		"application_id", app.ID,
		"from", from,
		"to", app.Status,
		"policy", s.policy.String(),
	)
	if from != app.Status {
		events.Emit(ctx, s.publisher, events.SubjectApplicationStatusChanged, events.ApplicationStatusChanged{
			ApplicationID: app.ID,
			JobOrderID:    app.JobOrderID,
			From:          string(from),
			To:            string(app.Status),
			ChangedBy:     caller.UserID,
		})
	}
	return app, nil
}

// RecomputeMatchScore пересчитывает заглушку оценки соответствия
func (s *ApplicationServiceImpl) RecomputeMatchScore(db *gorm.DB, caller *scope.Caller, id string) (*dto.MatchScoreResponse, error) {
	if err := requireEmployer(caller); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	app, err := s.appRepo.FindScoped(tx, caller, id)
	if err != nil {
		return nil, handleRepoError(err)
	}

	score, reasons := algorithms.PlaceholderMatchScore(app.JobOrder, app.Applicant)
	if err := s.appRepo.UpdateFields(tx, app.ID, map[string]interface{}{"ai_match_score": score}); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MatchScoreResponse{
		ApplicationID: app.ID,
		Score:         score,
		Reasons:       reasons,
	}, nil
}
