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

func TestAdminSetUserActive_BlocksLoginAndResolve(t *testing.T) {
	f := newPipelineFixture(t, algorithms.PolicyPermissive)
	admin := testutil.AdminCaller(t, f.db, f.svc.AuthService)

	user, err := f.svc.AdminService.SetUserActive(f.db, admin, f.applicant.UserID, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	_, err = f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "applicant@test.com", Password: testutil.TestPassword})
	requireAppError(t, err, apperrors.CodeAccountDisabled)

	_, err = f.svc.AuthService.ResolveCaller(f.db, f.applicant.UserID)
	requireAppError(t, err, apperrors.CodeAccountDisabled)

	_, err = f.svc.AdminService.SetUserActive(f.db, admin, f.applicant.UserID, true)
	require.NoError(t, err)
	_, err = f.svc.AuthService.Login(f.db, &dto.LoginRequest{Email: "applicant@test.com", Password: testutil.TestPassword})
	require.NoError(t, err)
}

func TestAdminSetUserActive_CannotModifySelf(t *testing.T) {
	f := newPipelineFixture(t, algorithms.PolicyPermissive)
	admin := testutil.AdminCaller(t, f.db, f.svc.AuthService)

	_, err := f.svc.AdminService.SetUserActive(f.db, admin, admin.UserID, false)
	requireAppError(t, err, apperrors.CodeForbidden)
}

func TestAdminListUsers_FiltersByRole(t *testing.T) {
	f := newPipelineFixture(t, algorithms.PolicyPermissive)
	testutil.AdminCaller(t, f.db, f.svc.AuthService)

	all, err := f.svc.AdminService.ListUsers(f.db, &dto.UserListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	employers, err := f.svc.AdminService.ListUsers(f.db, &dto.UserListQuery{Role: models.UserRoleEmployer})
	require.NoError(t, err)
	assert.Equal(t, int64(1), employers.Total)
}

func TestAdminPlatformStats(t *testing.T) {
	f := newPipelineFixture(t, algorithms.PolicyPermissive)
	app := f.apply(t, f.applicant)
	f.move(t, f.employer, app.ID, models.ApplicationStatusRejected)

	stats, err := f.svc.AdminService.GetPlatformStats(f.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.UsersByRole[models.UserRoleApplicant])
	assert.Equal(t, int64(1), stats.UsersByRole[models.UserRoleEmployer])
	assert.Equal(t, int64(1), stats.JobOrdersByStatus[models.JobOrderStatusActive])
	assert.Equal(t, int64(1), stats.ApplicationsByStage[models.ApplicationStatusRejected])
	assert.Empty(t, stats.ComplaintsByStatus)
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc, _ := testutil.NewServices(t, algorithms.PolicyPermissive)

	created, err := svc.AuthService.EnsureAdmin(db, "root@test.com", testutil.TestPassword)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.AuthService.EnsureAdmin(db, "root@test.com", testutil.TestPassword)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.AuthService.EnsureAdmin(db, "", "")
	require.NoError(t, err)
	assert.False(t, created)
}
