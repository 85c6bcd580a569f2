package testutil

import (
	"fmt"
	"net/http"
	"testing"

	"recruit_backend/internal/models"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services"
	"recruit_backend/internal/services/dto"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// Account - зарегистрированный через API пользователь
type Account struct {
	Token string
	User  dto.UserDTO
}

// RegisterApplicant регистрирует соискателя через API
func (ts *TestServer) RegisterApplicant(t *testing.T, email string) Account {
	return ts.register(t, map[string]interface{}{
		"email":      email,
		"password":   TestPassword,
		"role":       "APPLICANT",
		"first_name": "Test",
		"last_name":  "Applicant",
	})
}

// RegisterEmployer регистрирует работодателя через API
func (ts *TestServer) RegisterEmployer(t *testing.T, email, company string) Account {
	return ts.register(t, map[string]interface{}{
		"email":        email,
		"password":     TestPassword,
		"role":         "EMPLOYER",
		"company_name": company,
	})
}

// LoginAdmin создает администратора (если нет) и логинится
func (ts *TestServer) LoginAdmin(t *testing.T) Account {
	t.Helper()
	const email = "admin@test.com"
	_, err := ts.Services.AuthService.EnsureAdmin(ts.DB, email, TestPassword)
	require.NoError(t, err)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": TestPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var resp dto.AuthResponse
	DecodeData(t, body, &resp)
	return Account{Token: resp.AccessToken, User: resp.User}
}

func (ts *TestServer) register(t *testing.T, payload map[string]interface{}) Account {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var resp dto.AuthResponse
	DecodeData(t, body, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return Account{Token: resp.AccessToken, User: resp.User}
}

// CreateJobOrder создает вакансию через API от имени работодателя
func (ts *TestServer) CreateJobOrder(t *testing.T, token, title string, positions int) dto.JobOrderDetails {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/job-orders", token, map[string]interface{}{
		"title":       title,
		"description": "Описание вакансии " + title,
		"location":    "Dubai",
		"positions":   positions,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var details dto.JobOrderDetails
	DecodeData(t, body, &details)
	return details
}

// ============================================================================
// Фикстуры уровня сервисов (без HTTP)
// ============================================================================

// RegisterCaller регистрирует пользователя через AuthService и возвращает его caller
func RegisterCaller(t *testing.T, db *gorm.DB, authService services.AuthService, role models.UserRole, email string) *scope.Caller {
	t.Helper()
	req := &dto.RegisterRequest{
		Email:     email,
		Password:  TestPassword,
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
	}
	if role == models.UserRoleEmployer {
		req.CompanyName = fmt.Sprintf("Company of %s", email)
	}
	resp, err := authService.Register(db, req)
	require.NoError(t, err)

	caller, err := authService.ResolveCaller(db, resp.User.ID)
	require.NoError(t, err)
	return caller
}

// AdminCaller создает администратора и возвращает его caller
func AdminCaller(t *testing.T, db *gorm.DB, authService services.AuthService) *scope.Caller {
	t.Helper()
	const email = "admin@test.com"
	_, err := authService.EnsureAdmin(db, email, TestPassword)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", email).First(&user).Error)

	caller, err := authService.ResolveCaller(db, user.ID)
	require.NoError(t, err)
	return caller
}
