package handlers

import (
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profile")
	profiles.Use(h.auth, middleware.RequireRoles(models.UserRoleApplicant))
	{
		profiles.GET("/me", h.GetMyProfile)
		profiles.PATCH("/me", h.UpdateMyProfile)
		profiles.GET("/completion", h.GetCompletion)
	}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetMyProfile(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

// UpdateMyProfile godoc
// @Summary Частичное обновление профиля
// @Description Переданное поле со значением null очищается, отсутствующее поле не меняется
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} SuccessResponse{data=dto.ProfileResponse}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /profile/me [patch]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateMyProfile(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, profile)
}

// GetCompletion godoc
// @Summary Заполненность профиля (0-100)
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=dto.ProfileCompletionResponse}
// @Router /profile/completion [get]
func (h *ProfileHandler) GetCompletion(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	completion, err := h.profileService.GetCompletion(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, completion)
}
