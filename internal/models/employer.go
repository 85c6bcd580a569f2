package models

import (
	"time"

	"gorm.io/datatypes"
)

// VerificationDoc - метаданные документа верификации работодателя
type VerificationDoc struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Status     DocumentStatus `json:"status"`
	UploadedAt time.Time      `json:"uploaded_at"`
}

// Employer - профиль работодателя (1:1 с User роли EMPLOYER)
type Employer struct {
	BaseModel
	UserID           string                              `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	CompanyName      string                              `gorm:"size:255;not null" json:"company_name"`
	ContactPerson    string                              `gorm:"size:255" json:"contact_person"`
	Phone            string                              `gorm:"size:50" json:"phone"`
	Country          string                              `gorm:"size:100" json:"country"`
	IsVerified       bool                                `gorm:"not null;default:false" json:"is_verified"`
	TrustScore       int                                 `gorm:"not null;default:0" json:"trust_score"`
	TotalHires       int                                 `gorm:"not null;default:0" json:"total_hires"`
	VerificationDocs datatypes.JSONSlice[VerificationDoc] `json:"verification_docs"`

	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	JobOrders []JobOrder `gorm:"foreignKey:EmployerID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasApprovedDocument - хотя бы один документ одобрен
func (e *Employer) HasApprovedDocument() bool {
	for _, d := range e.VerificationDocs {
		if d.Status == DocumentStatusApproved {
			return true
		}
	}
	return false
}
