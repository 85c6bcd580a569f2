package handlers

import (
	"time"

	"recruit_backend/internal/middleware"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler - админ-панель. Списки откликов и вакансий используют те же
// сервисы, что и работодатель: для ADMIN ограничение по владельцу снимается.
type AdminHandler struct {
	*BaseHandler
	adminService       services.AdminService
	applicationService services.ApplicationService
	jobOrderService    services.JobOrderService
	complaintService   services.ComplaintService
}

func NewAdminHandler(
	base *BaseHandler,
	adminService services.AdminService,
	applicationService services.ApplicationService,
	jobOrderService services.JobOrderService,
	complaintService services.ComplaintService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        base,
		adminService:       adminService,
		applicationService: applicationService,
		jobOrderService:    jobOrderService,
		complaintService:   complaintService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(h.auth, middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.GetPlatformStats)

		// Пользователи
		admin.GET("/users", h.ListUsers)
		admin.PATCH("/users/:userId/active", h.SetUserActive)

		// Воронка
		admin.GET("/applications", h.ListApplications)
		admin.GET("/job-orders", h.ListJobOrders)
		admin.POST("/job-orders/expire", h.ExpireJobOrders)

		// Модерация
		admin.GET("/complaints", h.ListComplaints)
		admin.PATCH("/complaints/:complaintId", h.UpdateComplaint)
		admin.PATCH("/employers/:employerId/documents/:docId", h.DecideDocument)
	}
}

// GetPlatformStats godoc
// @Summary Статистика платформы
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.PlatformStats}
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, err := h.adminService.ListUsers(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, page)
}

// SetUserActive godoc
// @Summary Заблокировать или разблокировать пользователя
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "ID пользователя"
// @Param request body dto.SetUserActiveRequest true "Флаг активности"
// @Success 200 {object} SuccessResponse{data=models.User}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/users/{userId}/active [patch]
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.SetUserActiveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.adminService.SetUserActive(h.GetDB(c), caller, c.Param("userId"), *req.IsActive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *AdminHandler) ListApplications(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var query dto.ApplicationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, err := h.applicationService.ListApplications(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, page)
}

func (h *AdminHandler) ListJobOrders(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var query dto.JobOrderListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, err := h.jobOrderService.ListManaged(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, page)
}

// ExpireJobOrders godoc
// @Summary Перевести просроченные вакансии в EXPIRED
// @Description То же, что делает фоновый воркер, но по запросу
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.ExpireJobOrdersResponse}
// @Router /admin/job-orders/expire [post]
func (h *AdminHandler) ExpireJobOrders(c *gin.Context) {
	expired, err := h.jobOrderService.ExpireDue(c.Request.Context(), h.GetDB(c), time.Now().UTC())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, dto.ExpireJobOrdersResponse{Expired: expired})
}

func (h *AdminHandler) ListComplaints(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var query dto.ComplaintListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, err := h.complaintService.ListComplaints(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, page)
}

func (h *AdminHandler) UpdateComplaint(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.UpdateComplaintRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	complaint, err := h.complaintService.UpdateComplaint(h.GetDB(c), caller, c.Param("complaintId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, complaint)
}

// DecideDocument godoc
// @Summary Одобрить или отклонить документ работодателя
// @Description Работодатель становится верифицированным, если одобрен хотя бы один документ
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employerId path string true "ID работодателя"
// @Param docId path string true "ID документа"
// @Param request body dto.DocumentDecisionRequest true "Решение"
// @Success 200 {object} SuccessResponse{data=models.Employer}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/employers/{employerId}/documents/{docId} [patch]
func (h *AdminHandler) DecideDocument(c *gin.Context) {
	var req dto.DocumentDecisionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	employer, err := h.adminService.DecideDocument(h.GetDB(c), c.Param("employerId"), c.Param("docId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, employer)
}
