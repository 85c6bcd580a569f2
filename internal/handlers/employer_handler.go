package handlers

import (
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	*BaseHandler
	employerService services.EmployerService
}

func NewEmployerHandler(base *BaseHandler, employerService services.EmployerService) *EmployerHandler {
	return &EmployerHandler{
		BaseHandler:     base,
		employerService: employerService,
	}
}

func (h *EmployerHandler) RegisterRoutes(r *gin.RouterGroup) {
	employer := r.Group("/employer")
	employer.Use(h.auth, middleware.RequireRoles(models.UserRoleEmployer))
	{
		employer.GET("/me", h.GetMe)
		employer.PATCH("/me", h.UpdateMe)
		employer.POST("/me/documents", h.AddDocument)
		employer.GET("/dashboard", h.GetDashboard)
	}
}

func (h *EmployerHandler) GetMe(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	employer, err := h.employerService.GetMe(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, employer)
}

func (h *EmployerHandler) UpdateMe(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.UpdateEmployerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employer, err := h.employerService.UpdateMe(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, employer)
}

func (h *EmployerHandler) AddDocument(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.AddDocumentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employer, err := h.employerService.AddDocument(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, employer)
}

// GetDashboard godoc
// @Summary Воронка кандидатов по всем вакансиям работодателя
// @Tags employer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.EmployerDashboard}
// @Router /employer/dashboard [get]
func (h *EmployerHandler) GetDashboard(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	dashboard, err := h.employerService.GetDashboard(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, dashboard)
}
