package services_test

import (
	"encoding/json"
	"testing"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services/dto"
	"recruit_backend/internal/testutil"
	"recruit_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMyProfile_PartialSemantics(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	applicant := testutil.RegisterCaller(t, db, svc.AuthService, models.UserRoleApplicant, "applicant@test.com")

	var fill dto.UpdateProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"phone": "+971500000000",
		"nationality": "Kenya",
		"ai_generated_cv": {"summary": "5 years in hospitality"}
	}`), &fill))
	filled, err := svc.ProfileService.UpdateMyProfile(db, applicant, &fill)
	require.NoError(t, err)
	assert.Equal(t, 100, filled.Completion)

	var clear dto.UpdateProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone": null, "ai_generated_cv": null}`), &clear))
	cleared, err := svc.ProfileService.UpdateMyProfile(db, applicant, &clear)
	require.NoError(t, err)

	assert.Empty(t, cleared.Phone)
	assert.Empty(t, cleared.AIGeneratedCV)
	// не переданы - сохранились
	assert.Equal(t, "Kenya", cleared.Nationality)
	assert.Equal(t, "Test", cleared.FirstName)
	assert.Equal(t, 35, cleared.Completion)

	completion, err := svc.ProfileService.GetCompletion(db, applicant)
	require.NoError(t, err)
	assert.Equal(t, 35, completion.Completion)
	assert.ElementsMatch(t, []string{"phone", "cv"}, completion.MissingFields)
}

func TestUpdateMyProfile_EmptyBodyIsNoop(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	applicant := testutil.RegisterCaller(t, db, svc.AuthService, models.UserRoleApplicant, "applicant@test.com")

	before, err := svc.ProfileService.GetMyProfile(db, applicant)
	require.NoError(t, err)

	after, err := svc.ProfileService.UpdateMyProfile(db, applicant, &dto.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, before.FirstName, after.FirstName)
	assert.Equal(t, before.LastName, after.LastName)
	assert.Equal(t, before.Completion, after.Completion)
}

func TestUpdateMyProfile_CVMustBeObject(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	applicant := testutil.RegisterCaller(t, db, svc.AuthService, models.UserRoleApplicant, "applicant@test.com")

	_, err := svc.ProfileService.UpdateMyProfile(db, applicant, &dto.UpdateProfileRequest{
		AIGeneratedCV: dto.Some(json.RawMessage(`"plain text"`)),
	})
	requireAppError(t, err, apperrors.CodeValidationFailed)
}

func TestGetMyProfile_EmployerForbidden(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	employer := testutil.RegisterCaller(t, db, svc.AuthService, models.UserRoleEmployer, "employer@test.com")

	_, err := svc.ProfileService.GetMyProfile(db, employer)
	requireAppError(t, err, apperrors.CodeForbidden)
}
