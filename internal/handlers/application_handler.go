package handlers

import (
	"recruit_backend/internal/auth"
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/ratelimit"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
	applyLimiter       ratelimit.Limiter
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService, applyLimiter ratelimit.Limiter) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		applyLimiter:       applyLimiter,
	}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(h.auth)
	{
		// Applicant
		applications.POST("/job-orders/:jobOrderId",
			middleware.RequirePermission(auth.PermApply),
			middleware.RateLimitMiddleware(h.applyLimiter),
			h.Apply,
		)
		applications.GET("/my", middleware.RequirePermission(auth.PermReadOwnApps), h.GetMyApplications)

		// Employer (владелец вакансии)
		applications.PATCH("/:applicationId/status", middleware.RequirePermission(auth.PermManagePipeline), h.UpdateStatus)
		applications.POST("/:applicationId/match-score", middleware.RequirePermission(auth.PermManagePipeline), h.RecomputeMatchScore)

		// Common (scoped)
		applications.GET("", h.ListApplications)
		applications.GET("/:applicationId", h.GetApplication)
	}
}

// Apply godoc
// @Summary Откликнуться на вакансию
// @Description Только ACTIVE вакансии. Повторный отклик возвращает 409 "Already applied to this job".
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param jobOrderId path string true "ID вакансии"
// @Success 201 {object} SuccessResponse{data=models.Application}
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /applications/job-orders/{jobOrderId} [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Apply(c.Request.Context(), h.GetDB(c), caller, c.Param("jobOrderId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, app)
}

// GetMyApplications godoc
// @Summary Мои отклики с краткой информацией о вакансии
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=[]dto.MyApplicationDTO}
// @Router /applications/my [get]
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	apps, err := h.applicationService.ListMyApplications(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, apps)
}

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
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

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	app, err := h.applicationService.GetApplication(h.GetDB(c), caller, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, app)
}

// UpdateStatus godoc
// @Summary Сменить статус отклика
// @Description Вехи (shortlisted_at, interviewed_at, selected_at, deployed_at) записываются один раз. Заметки перезаписываются.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param applicationId path string true "ID отклика"
// @Param request body dto.UpdateApplicationStatusRequest true "Новый статус"
// @Success 200 {object} SuccessResponse{data=models.Application}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Переход запрещен строгой политикой"
// @Router /applications/{applicationId}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(c.Request.Context(), h.GetDB(c), caller, c.Param("applicationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, app)
}

func (h *ApplicationHandler) RecomputeMatchScore(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	score, err := h.applicationService.RecomputeMatchScore(h.GetDB(c), caller, c.Param("applicationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, score)
}
