package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeNewApplication    = "new_application"
	NotificationTypeComplaintUpdate   = "complaint_update"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"size:36;not null;index" json:"user_id"`
	Type    string         `gorm:"size:50;not null" json:"type"`
	Title   string         `gorm:"size:255;not null" json:"title"`
	Message string         `gorm:"type:text" json:"message"`
	Data    datatypes.JSON `json:"data"` // {"application_id": "...", "job_order_id": "..."}
	IsRead  bool           `gorm:"not null;default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at"`
}

// AllModels - список моделей для AutoMigrate в порядке зависимостей
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Employer{},
		&JobOrder{},
		&Application{},
		&Complaint{},
		&Notification{},
	}
}
