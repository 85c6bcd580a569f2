package services_test

import (
	"testing"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services/dto"
	"recruit_backend/internal/testutil"
	"recruit_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesRoleEntity(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)

	applicant, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "a@test.com", Password: testutil.TestPassword, Role: models.UserRoleApplicant,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, applicant.User.ProfileID)
	assert.Empty(t, applicant.User.EmployerID)
	assert.Equal(t, "Bearer", applicant.TokenType)

	employer, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "e@test.com", Password: testutil.TestPassword, Role: models.UserRoleEmployer, CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, employer.User.EmployerID)

	claims, err := svc.AuthService.ParseToken(employer.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, employer.User.ID, claims.UserID)
	assert.Equal(t, models.UserRoleEmployer, claims.Role)
}

func TestRegister_Rejections(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)

	_, err := svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "admin@test.com", Password: testutil.TestPassword, Role: models.UserRoleAdmin,
	})
	requireAppError(t, err, apperrors.CodeValidationFailed)

	_, err = svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "e@test.com", Password: testutil.TestPassword, Role: models.UserRoleEmployer,
	})
	requireAppError(t, err, apperrors.CodeValidationFailed)

	_, err = svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "weak@test.com", Password: "onlyletters", Role: models.UserRoleApplicant,
	})
	requireAppError(t, err, apperrors.CodeValidationFailed)

	_, err = svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "dup@test.com", Password: testutil.TestPassword, Role: models.UserRoleApplicant,
	})
	require.NoError(t, err)
	_, err = svc.AuthService.Register(db, &dto.RegisterRequest{
		Email: "dup@test.com", Password: testutil.TestPassword, Role: models.UserRoleApplicant,
	})
	requireAppError(t, err, apperrors.CodeAlreadyExists)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	testutil.RegisterCaller(t, db, svc.AuthService, models.UserRoleApplicant, "a@test.com")

	_, err := svc.AuthService.Login(db, &dto.LoginRequest{Email: "a@test.com", Password: "wrong-pass1"})
	requireAppError(t, err, apperrors.CodeInvalidCredentials)

	_, err = svc.AuthService.Login(db, &dto.LoginRequest{Email: "nobody@test.com", Password: testutil.TestPassword})
	requireAppError(t, err, apperrors.CodeInvalidCredentials)

	resp, err := svc.AuthService.Login(db, &dto.LoginRequest{Email: "a@test.com", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}
