package handlers

import (
	"recruit_backend/internal/auth"
	"recruit_backend/internal/middleware"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	*BaseHandler
	complaintService services.ComplaintService
}

func NewComplaintHandler(base *BaseHandler, complaintService services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		BaseHandler:      base,
		complaintService: complaintService,
	}
}

func (h *ComplaintHandler) RegisterRoutes(r *gin.RouterGroup) {
	complaints := r.Group("/complaints")
	complaints.Use(h.auth, middleware.RequirePermission(auth.PermFileComplaint))
	{
		complaints.POST("", h.CreateComplaint)
		complaints.GET("/my", h.GetMyComplaints)
	}
}

// CreateComplaint godoc
// @Summary Подать жалобу
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateComplaintRequest true "Жалоба"
// @Success 201 {object} SuccessResponse{data=models.Complaint}
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /complaints [post]
func (h *ComplaintHandler) CreateComplaint(c *gin.Context) {
	caller, ok := h.GetCaller(c)
	if !ok {
		return
	}
	var req dto.CreateComplaintRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.CreateComplaint(h.GetDB(c), caller, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, complaint)
}

func (h *ComplaintHandler) GetMyComplaints(c *gin.Context) {
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
