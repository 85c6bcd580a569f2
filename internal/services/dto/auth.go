package dto

import (
	"time"

	"recruit_backend/internal/models"
)

// RegisterRequest - регистрация соискателя или работодателя
type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     models.UserRole `json:"role" validate:"required,is-user-role"`

	// Соискатель
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`

	// Работодатель
	CompanyName string `json:"company_name,omitempty" validate:"required_if=Role EMPLOYER,max=255"`
	Country     string `json:"country,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// UserDTO - базовая информация о пользователе
type UserDTO struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	IsActive   bool            `json:"is_active"`
	ProfileID  string          `json:"profile_id,omitempty"`
	EmployerID string          `json:"employer_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	out := UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if u.Profile != nil {
		out.ProfileID = u.Profile.ID
	}
	if u.Employer != nil {
		out.EmployerID = u.Employer.ID
	}
	return out
}
