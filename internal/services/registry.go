package services

import (
	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/auth"
	"recruit_backend/internal/events"
	"recruit_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	EmployerService     EmployerService
	JobOrderService     JobOrderService
	ApplicationService  ApplicationService
	ComplaintService    ComplaintService
	NotificationService NotificationService
	AdminService        AdminService
}

// Dependencies - внешние зависимости сервисного слоя
type Dependencies struct {
	Tokens    *auth.TokenManager
	Publisher events.Publisher
	Policy    algorithms.TransitionPolicy
}

// NewServiceContainer собирает репозитории и сервисы
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}

	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	employerRepo := repositories.NewEmployerRepository()
	jobOrderRepo := repositories.NewJobOrderRepository()
	appRepo := repositories.NewApplicationRepository()
	complaintRepo := repositories.NewComplaintRepository()
	notificationRepo := repositories.NewNotificationRepository()

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, profileRepo, employerRepo, deps.Tokens),
		ProfileService:      NewProfileService(profileRepo),
		EmployerService:     NewEmployerService(employerRepo, jobOrderRepo, appRepo),
		JobOrderService:     NewJobOrderService(jobOrderRepo, appRepo, deps.Publisher),
		ApplicationService:  NewApplicationService(appRepo, jobOrderRepo, employerRepo, notificationRepo, deps.Publisher, deps.Policy),
		ComplaintService:    NewComplaintService(complaintRepo, profileRepo, notificationRepo),
		NotificationService: NewNotificationService(notificationRepo),
		AdminService:        NewAdminService(userRepo, employerRepo, jobOrderRepo, appRepo, complaintRepo),
	}
}
