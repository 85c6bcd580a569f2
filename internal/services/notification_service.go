package services

import (
	"time"

	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	GetUserNotifications(db *gorm.DB, caller *scope.Caller, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error)
	MarkAsRead(db *gorm.DB, caller *scope.Caller, id string) error
	MarkAllAsRead(db *gorm.DB, caller *scope.Caller) (*dto.MarkAllReadResponse, error)
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

func (s *NotificationServiceImpl) GetUserNotifications(db *gorm.DB, caller *scope.Caller, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error) {
	page := toPagination(query.ListQuery)
	notifications, total, err := s.notificationRepo.FindUserNotifications(db, caller, repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Type:       query.Type,
		Pagination: page,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.GetUnreadCount(db, caller)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.NotificationListResponse{
		PaginatedResponse: dto.NewPaginatedResponse(notifications, total, page.Page, page.PageSize),
		UnreadCount:       unread,
	}, nil
}

func (s *NotificationServiceImpl) MarkAsRead(db *gorm.DB, caller *scope.Caller, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.notificationRepo.MarkAsRead(tx, caller, id, time.Now().UTC()); err != nil {
		return handleRepoError(err)
	}
	return tx.Commit().Error
}

func (s *NotificationServiceImpl) MarkAllAsRead(db *gorm.DB, caller *scope.Caller) (*dto.MarkAllReadResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	updated, err := s.notificationRepo.MarkAllAsRead(tx, caller, time.Now().UTC())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}
