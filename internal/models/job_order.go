package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// JobOrder - вакансия (заявка на подбор) работодателя
type JobOrder struct {
	BaseModel
	EmployerID  string `gorm:"size:36;not null;index" json:"employer_id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	// Свободная структура: skills, responsibilities, benefits
	Requirements datatypes.JSON `json:"requirements"`
	Salary       *float64       `json:"salary"`
	Location     string         `gorm:"size:255;not null" json:"location"`
	Positions    int            `gorm:"not null;default:1" json:"positions"`
	Status       JobOrderStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	ExpiresAt    *time.Time     `gorm:"index" json:"expires_at"`

	Employer     *Employer     `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	Applications []Application `gorm:"foreignKey:JobOrderID;constraint:OnDelete:CASCADE" json:"-"`
}

// RequirementsDoc разбирает требования в map; пустой или битый JSON дает nil
func (j *JobOrder) RequirementsDoc() map[string]any {
	if len(j.Requirements) == 0 {
		return nil
	}
	var doc map[string]any
	if err := json.Unmarshal(j.Requirements, &doc); err != nil {
		return nil
	}
	return doc
}
