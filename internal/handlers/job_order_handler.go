package handlers

import (
	"recruit_backend/internal/auth"
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobOrderHandler struct {
	*BaseHandler
	jobOrderService services.JobOrderService
}

func NewJobOrderHandler(base *BaseHandler, jobOrderService services.JobOrderService) *JobOrderHandler {
	return &JobOrderHandler{
		BaseHandler:     base,
		jobOrderService: jobOrderService,
	}
}

func (h *JobOrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobOrders := r.Group("/job-orders")
	jobOrders.Use(h.auth)
	{
		jobOrders.GET("/open", h.ListOpen)

		jobOrders.POST("", middleware.RequireRoles(models.UserRoleEmployer), h.CreateJobOrder)
		jobOrders.GET("/my", middleware.RequireRoles(models.UserRoleEmployer), h.ListMyJobOrders)

		jobOrders.GET("/:jobOrderId", middleware.RequireRoles(models.UserRoleEmployer, models.UserRoleAdmin), h.GetJobOrder)
		jobOrders.PATCH("/:jobOrderId", middleware.RequirePermission(auth.PermManageJobOrders), h.UpdateJobOrder)
		jobOrders.DELETE("/:jobOrderId", middleware.RequirePermission(auth.PermManageJobOrders), h.DeleteJobOrder)
	}
}

// CreateJobOrder godoc
// @Summary Создать вакансию
// @Tags job-orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobOrderRequest true "Вакансия"
// @Success 201 {object} SuccessResponse{data=dto.JobOrderDetails}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /job-orders [post]
func (h *JobOrderHandler) CreateJobOrder(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateJobOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	jobOrder, err := h.jobOrderService.CreateJobOrder(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, jobOrder)
}

// GetJobOrder godoc
// @Summary Вакансия с кандидатами и показателями заполнения
// @Description Чужая вакансия возвращает 404
// @Tags job-orders
// @Produce json
// @Security BearerAuth
// @Param jobOrderId path string true "ID вакансии"
// @Success 200 {object} SuccessResponse{data=dto.JobOrderDetails}
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /job-orders/{jobOrderId} [get]
func (h *JobOrderHandler) GetJobOrder(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	details, err := h.jobOrderService.GetJobOrder(h.GetDB(c), caller, c.Param("jobOrderId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, details)
}

func (h *JobOrderHandler) ListMyJobOrders(c *gin.Context) {
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

func (h *JobOrderHandler) ListOpen(c *gin.Context) {
	var query dto.JobOrderListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, err := h.jobOrderService.ListOpen(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, page)
}

// UpdateJobOrder godoc
// @Summary Частичное обновление вакансии
// @Description null очищает необязательное поле (salary, requirements, expires_at), отсутствующее поле не меняется
// @Tags job-orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param jobOrderId path string true "ID вакансии"
// @Param request body dto.UpdateJobOrderRequest true "Изменяемые поля"
// @Success 200 {object} SuccessResponse{data=dto.JobOrderDetails}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /job-orders/{jobOrderId} [patch]
func (h *JobOrderHandler) UpdateJobOrder(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.UpdateJobOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	details, err := h.jobOrderService.UpdateJobOrder(h.GetDB(c), caller, c.Param("jobOrderId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, details)
}

func (h *JobOrderHandler) DeleteJobOrder(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	if err := h.jobOrderService.DeleteJobOrder(h.GetDB(c), caller, c.Param("jobOrderId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Message(c, "Job order deleted")
}
