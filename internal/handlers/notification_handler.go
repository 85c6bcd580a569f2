package handlers

import (
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	notifications.Use(h.auth)
	{
		notifications.GET("/my", h.GetMyNotifications)
		notifications.POST("/read-all", h.MarkAllAsRead)
		notifications.POST("/:notificationId/read", h.MarkAsRead)
	}
}

// GetMyNotifications godoc
// @Summary Мои уведомления
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread_only query bool false "Только непрочитанные"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} SuccessResponse{data=dto.NotificationListResponse}
// @Router /notifications/my [get]
func (h *NotificationHandler) GetMyNotifications(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var query dto.NotificationListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	res, err := h.notificationService.GetUserNotifications(h.GetDB(c), caller, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, res)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	if err := h.notificationService.MarkAsRead(h.GetDB(c), caller, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Message(c, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	res, err := h.notificationService.MarkAllAsRead(h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, res)
}
