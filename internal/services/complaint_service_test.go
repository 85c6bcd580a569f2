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

func TestComplaints_LifecycleAndScope(t *testing.T) {
	f := newPipelineFixture(t, algorithms.PolicyPermissive)
	admin := testutil.AdminCaller(t, f.db, f.svc.AuthService)

	complaint, err := f.svc.ComplaintService.CreateComplaint(f.db, f.applicant, &dto.CreateComplaintRequest{
		Category:    models.ComplaintCategoryDeploymentDelay,
		Description: "Visa processing has been stuck for two months",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusOpen, complaint.Status)
	assert.Equal(t, 1, complaint.EscalationLevel)

	other := testutil.RegisterCaller(t, f.db, f.svc.AuthService, models.UserRoleApplicant, "other@test.com")
	otherList, err := f.svc.ComplaintService.ListComplaints(f.db, other, &dto.ComplaintListQuery{})
	require.NoError(t, err)
	assert.Zero(t, otherList.Total)

	mine, err := f.svc.ComplaintService.ListComplaints(f.db, f.applicant, &dto.ComplaintListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)

	status := models.ComplaintStatusInReview
	level := 3
	updated, err := f.svc.ComplaintService.UpdateComplaint(f.db, admin, complaint.ID, &dto.UpdateComplaintRequest{
		Status:          &status,
		EscalationLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInReview, updated.Status)
	assert.Equal(t, 3, updated.EscalationLevel)

	lower := 2
	_, err = f.svc.ComplaintService.UpdateComplaint(f.db, admin, complaint.ID, &dto.UpdateComplaintRequest{
		EscalationLevel: &lower,
	})
	requireAppError(t, err, apperrors.CodeInvalidOperation)

	var notifications int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", f.applicant.UserID, models.NotificationTypeComplaintUpdate).
		Count(&notifications).Error)
	assert.Equal(t, int64(1), notifications)
}

func TestComplaints_OnlyAdminModerates(t *testing.T) {
	f := newPipelineFixture(t, algorithms.PolicyPermissive)
	complaint, err := f.svc.ComplaintService.CreateComplaint(f.db, f.applicant, &dto.CreateComplaintRequest{
		Category:    models.ComplaintCategoryOther,
		Description: "Recruiter did not answer messages",
	})
	require.NoError(t, err)

	status := models.ComplaintStatusClosed
	_, err = f.svc.ComplaintService.UpdateComplaint(f.db, f.employer, complaint.ID, &dto.UpdateComplaintRequest{Status: &status})
	requireAppError(t, err, apperrors.CodeForbidden)

	_, err = f.svc.ComplaintService.CreateComplaint(f.db, f.employer, &dto.CreateComplaintRequest{
		Category:    models.ComplaintCategoryOther,
		Description: "Employers cannot file complaints",
	})
	requireAppError(t, err, apperrors.CodeForbidden)
}
