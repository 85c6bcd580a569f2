package models

type User struct {
	BaseModel
	Email           string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string   `gorm:"not null" json:"-"`
	Role            UserRole `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive        bool     `gorm:"not null;default:true" json:"is_active"`
	IsEmailVerified bool     `gorm:"not null;default:false" json:"is_email_verified"`

	// Relations (ровно одна из двух, в зависимости от роли)
	Profile  *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Employer *Employer `gorm:"foreignKey:UserID" json:"employer,omitempty"`
}
