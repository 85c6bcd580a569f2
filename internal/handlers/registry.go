package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	EmployerHandler     *EmployerHandler
	JobOrderHandler     *JobOrderHandler
	ApplicationHandler  *ApplicationHandler
	ComplaintHandler    *ComplaintHandler
	NotificationHandler *NotificationHandler
	AdminHandler        *AdminHandler
}
