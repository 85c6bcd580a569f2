package models

// Complaint - жалоба соискателя. С воронкой откликов не связана.
type Complaint struct {
	BaseModel
	ProfileID       string            `gorm:"size:36;not null;index" json:"profile_id"`
	Category        ComplaintCategory `gorm:"type:varchar(40);not null" json:"category"`
	Description     string            `gorm:"type:text;not null" json:"description"`
	Status          ComplaintStatus   `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	EscalationLevel int               `gorm:"not null;default:1" json:"escalation_level"`
	Resolution      string            `gorm:"type:text" json:"resolution"`

	Profile *Profile `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}
