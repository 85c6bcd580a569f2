package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Profile - профиль соискателя (1:1 с User роли APPLICANT)
type Profile struct {
	BaseModel
	UserID       string     `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	FirstName    string     `gorm:"size:100" json:"first_name"`
	LastName     string     `gorm:"size:100" json:"last_name"`
	Phone        string     `gorm:"size:50" json:"phone"`
	Nationality  string     `gorm:"size:100" json:"nationality"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	TrustScore   int        `gorm:"not null;default:0" json:"trust_score"`
	RewardPoints int        `gorm:"not null;default:0" json:"reward_points"`
	// Свободная структура: summary, skills, experience, education, certifications
	AIGeneratedCV datatypes.JSON `json:"ai_generated_cv"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// FullName - "Имя Фамилия" без лишних пробелов
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// CV разбирает документ резюме в map; пустой или битый JSON дает nil
func (p *Profile) CV() map[string]any {
	if len(p.AIGeneratedCV) == 0 {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(p.AIGeneratedCV, &doc); err != nil {
		return nil
	}
	return doc
}
