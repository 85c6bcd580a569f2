package repositories

import (
	"encoding/json"
	"time"

	"recruit_backend/internal/models"
	"recruit_backend/internal/scope"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationCriteria struct {
	UnreadOnly bool
	Type       string
	Pagination
}

type NotificationRepository interface {
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	FindUserNotifications(db *gorm.DB, caller *scope.Caller, criteria NotificationCriteria) ([]models.Notification, int64, error)
	GetUnreadCount(db *gorm.DB, caller *scope.Caller) (int64, error)
	MarkAsRead(db *gorm.DB, caller *scope.Caller, id string, now time.Time) error
	MarkAllAsRead(db *gorm.DB, caller *scope.Caller, now time.Time) (int64, error)

	// Фабрики типовых уведомлений
	CreateApplicationStatusNotification(db *gorm.DB, userID string, app *models.Application, jobTitle string) error
	CreateNewApplicationNotification(db *gorm.DB, employerUserID string, app *models.Application, jobTitle string) error
	CreateComplaintUpdateNotification(db *gorm.DB, userID string, complaint *models.Complaint) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, caller *scope.Caller, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).Scopes(scope.Notifications(caller))
	if criteria.UnreadOnly {
		query = query.Where("notifications.is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("notifications.type = ?", criteria.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err := criteria.Pagination.apply(query).
		Order("notifications.created_at DESC").
		Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, caller *scope.Caller) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Scopes(scope.Notifications(caller)).
		Where("notifications.is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, caller *scope.Caller, id string, now time.Time) error {
	var notification models.Notification
	err := db.Scopes(scope.Notifications(caller)).
		Where("notifications.id = ?", id).
		First(&notification).Error
	if err != nil {
		return notFound(err, ErrNotificationNotFound)
	}
	if notification.IsRead {
		return nil
	}
	return db.Model(&notification).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, caller *scope.Caller, now time.Time) (int64, error) {
	result := db.Model(&models.Notification{}).
		Scopes(scope.Notifications(caller)).
		Where("notifications.is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) CreateApplicationStatusNotification(db *gorm.DB, userID string, app *models.Application, jobTitle string) error {
	return r.CreateNotification(db, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeApplicationStatus,
		Title:   "Статус отклика изменен",
		Message: "Ваш отклик на вакансию \"" + jobTitle + "\" теперь в статусе " + string(app.Status),
		Data: notificationData(map[string]any{
			"application_id": app.ID,
			"job_order_id":   app.JobOrderID,
			"status":         app.Status,
		}),
	})
}

func (r *NotificationRepositoryImpl) CreateNewApplicationNotification(db *gorm.DB, employerUserID string, app *models.Application, jobTitle string) error {
	return r.CreateNotification(db, &models.Notification{
		UserID:  employerUserID,
		Type:    models.NotificationTypeNewApplication,
		Title:   "Новый отклик",
		Message: "Новый отклик на вакансию \"" + jobTitle + "\"",
		Data: notificationData(map[string]any{
			"application_id": app.ID,
			"job_order_id":   app.JobOrderID,
		}),
	})
}

func (r *NotificationRepositoryImpl) CreateComplaintUpdateNotification(db *gorm.DB, userID string, complaint *models.Complaint) error {
	return r.CreateNotification(db, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeComplaintUpdate,
		Title:   "Жалоба обновлена",
		Message: "Статус вашей жалобы: " + string(complaint.Status),
		Data: notificationData(map[string]any{
			"complaint_id":     complaint.ID,
			"status":           complaint.Status,
			"escalation_level": complaint.EscalationLevel,
		}),
	})
}

func notificationData(data map[string]any) datatypes.JSON {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
