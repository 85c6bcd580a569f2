package dto

import (
	"encoding/json"
	"time"

	"recruit_backend/internal/models"
)

// UpdateProfileRequest - частичное обновление профиля соискателя.
// null очищает поле, отсутствие поля оставляет его как есть.
type UpdateProfileRequest struct {
	FirstName     Optional[string]          `json:"first_name" swaggertype:"string" validate:"omitempty,max=100"`
	LastName      Optional[string]          `json:"last_name" swaggertype:"string" validate:"omitempty,max=100"`
	Phone         Optional[string]          `json:"phone" swaggertype:"string" validate:"omitempty,max=50"`
	Nationality   Optional[string]          `json:"nationality" swaggertype:"string" validate:"omitempty,max=100"`
	DateOfBirth   Optional[time.Time]       `json:"date_of_birth" swaggertype:"string"`
	AIGeneratedCV Optional[json.RawMessage] `json:"ai_generated_cv" swaggertype:"object"`
}

type ProfileResponse struct {
	*models.Profile
	Email      string `json:"email,omitempty"`
	Completion int    `json:"completion"`
}

type ProfileCompletionResponse struct {
	Completion    int      `json:"completion"`
	MissingFields []string `json:"missing_fields"`
}
