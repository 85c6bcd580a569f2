package models

import "time"

// Application - отклик соискателя на вакансию.
// Пара (applicant_id, job_order_id) уникальна на уровне БД.
type Application struct {
	BaseModel
	ApplicantID string            `gorm:"size:36;not null;uniqueIndex:idx_applications_applicant_job_order" json:"applicant_id"`
	JobOrderID  string            `gorm:"size:36;not null;uniqueIndex:idx_applications_applicant_job_order;index" json:"job_order_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);not null;default:'APPLIED';index" json:"status"`
	// Заглушка: при создании всегда NULL
	AIMatchScore *float64 `json:"ai_match_score"`

	// Вехи воронки: записываются один раз
	ShortlistedAt *time.Time `json:"shortlisted_at"`
	InterviewedAt *time.Time `json:"interviewed_at"`
	SelectedAt    *time.Time `json:"selected_at"`
	DeployedAt    *time.Time `json:"deployed_at"`

	InterviewNotes    string `gorm:"type:text" json:"interview_notes"`
	VideoInterviewURL string `gorm:"size:500" json:"video_interview_url"`

	Applicant *Profile  `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"applicant,omitempty"`
	JobOrder  *JobOrder `gorm:"foreignKey:JobOrderID" json:"job_order,omitempty"`
}
