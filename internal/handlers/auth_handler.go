package handlers

import (
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/ratelimit"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	loginLimiter ratelimit.Limiter
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, loginLimiter ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", middleware.RateLimitMiddleware(h.loginLimiter), h.Register)
		authGroup.POST("/login", middleware.RateLimitMiddleware(h.loginLimiter), h.Login)
		authGroup.GET("/me", h.auth, h.Me)
	}
}

// Register godoc
// @Summary Регистрация соискателя или работодателя
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные регистрации"
// @Success 201 {object} SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login godoc
// @Summary Вход
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} SuccessResponse{data=dto.AuthResponse}
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}
