package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/app"
	"recruit_backend/internal/models"
	"recruit_backend/internal/ratelimit"
	"recruit_backend/internal/services/dto"
	"recruit_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func decodeError(t *testing.T, body string) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.Unmarshal([]byte(body), &out), body)
	assert.False(t, out.Success)
	return out
}

func TestHealth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "ok")
}

func TestApplicationPipeline_EndToEnd(t *testing.T) {
	ts := testutil.NewTestServer(t)

	employer := ts.RegisterEmployer(t, "employer@test.com", "Gulf Staffing")
	applicant := ts.RegisterApplicant(t, "applicant@test.com")
	jobOrder := ts.CreateJobOrder(t, employer.Token, "Hotel Receptionist", 2)

	// --- Соискатель видит открытую вакансию ---
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/job-orders/open", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Hotel Receptionist")
	assert.Contains(t, body, "Gulf Staffing")

	// --- Отклик ---
	applyPath := "/api/v1/applications/job-orders/" + jobOrder.ID
	res, body = ts.SendRequest(t, http.MethodPost, applyPath, applicant.Token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var application models.Application
	testutil.DecodeData(t, body, &application)
	assert.Equal(t, models.ApplicationStatusApplied, application.Status)

	// --- Повторный отклик ---
	res, body = ts.SendRequest(t, http.MethodPost, applyPath, applicant.Token, nil)
	require.Equal(t, http.StatusConflict, res.StatusCode, body)
	errResp := decodeError(t, body)
	assert.Equal(t, "Already applied to this job", errResp.Message)

	// --- Чужой работодатель не видит ни вакансию, ни отклик ---
	foreign := ts.RegisterEmployer(t, "foreign@test.com", "Other Agency")
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/job-orders/"+jobOrder.ID, foreign.Token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
	decodeError(t, body)

	statusPath := "/api/v1/applications/" + application.ID + "/status"
	res, body = ts.SendRequest(t, http.MethodPatch, statusPath, foreign.Token, map[string]string{"status": "SHORTLISTED"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

	// --- Соискатель не может менять статус ---
	res, body = ts.SendRequest(t, http.MethodPatch, statusPath, applicant.Token, map[string]string{"status": "DEPLOYED"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// --- Неизвестный статус ---
	res, body = ts.SendRequest(t, http.MethodPatch, statusPath, employer.Token, map[string]string{"status": "HIRED"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	// --- Работодатель двигает по воронке ---
	res, body = ts.SendRequest(t, http.MethodPatch, statusPath, employer.Token, map[string]interface{}{
		"status":          "SHORTLISTED",
		"interview_notes": "Fluent English",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var shortlisted models.Application
	testutil.DecodeData(t, body, &shortlisted)
	require.NotNil(t, shortlisted.ShortlistedAt)
	assert.Equal(t, "Fluent English", shortlisted.InterviewNotes)

	res, body = ts.SendRequest(t, http.MethodPatch, statusPath, employer.Token, map[string]string{"status": "SELECTED"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// --- Показатели заполнения ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/job-orders/"+jobOrder.ID, employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var details dto.JobOrderDetails
	testutil.DecodeData(t, body, &details)
	assert.Equal(t, 1, details.ApplicantCount)
	assert.Equal(t, 1, details.SelectedCount)
	assert.InDelta(t, 50.0, details.FillPercentage, 0.001)
	require.Len(t, details.Candidates, 1)
	assert.Equal(t, "Test Applicant", details.Candidates[0].FullName)

	// --- Мои отклики ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/my", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var mine []dto.MyApplicationDTO
	testutil.DecodeData(t, body, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, models.ApplicationStatusSelected, mine[0].Status)
	assert.Equal(t, "Gulf Staffing", mine[0].CompanyName)

	// --- Уведомления соискателя ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/my?unread_only=true", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var notifications struct {
		Total       int64 `json:"total"`
		UnreadCount int64 `json:"unread_count"`
	}
	testutil.DecodeData(t, body, &notifications)
	assert.Equal(t, int64(2), notifications.Total)
	assert.Equal(t, int64(2), notifications.UnreadCount)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/read-all", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var marked dto.MarkAllReadResponse
	testutil.DecodeData(t, body, &marked)
	assert.Equal(t, int64(2), marked.Updated)
}

func TestJobOrderPatch_NullVersusOmitted(t *testing.T) {
	ts := testutil.NewTestServer(t)
	employer := ts.RegisterEmployer(t, "employer@test.com", "Gulf Staffing")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/job-orders", employer.Token, map[string]interface{}{
		"title":        "Chef",
		"description":  "Hotel kitchen",
		"location":     "Jeddah",
		"salary":       2200,
		"positions":    4,
		"requirements": map[string]interface{}{"cuisine": "arabic"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var created dto.JobOrderDetails
	testutil.DecodeData(t, body, &created)

	path := "/api/v1/job-orders/" + created.ID
	res, body = ts.SendRequest(t, http.MethodPatch, path, employer.Token, `{"salary": null, "location": "Mecca"}`)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var updated dto.JobOrderDetails
	testutil.DecodeData(t, body, &updated)
	assert.Nil(t, updated.Salary)
	assert.Equal(t, "Mecca", updated.Location)
	assert.Equal(t, 4, updated.Positions)
	assert.JSONEq(t, `{"cuisine":"arabic"}`, string(updated.Requirements))

	res, body = ts.SendRequest(t, http.MethodPatch, path, employer.Token, `{"title": null}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, path, employer.Token, `{"status": "PAUSED"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}

func TestProfilePatch_NullClears(t *testing.T) {
	ts := testutil.NewTestServer(t)
	applicant := ts.RegisterApplicant(t, "applicant@test.com")

	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/profile/me", applicant.Token,
		`{"phone": "+254700000000", "nationality": "Kenya"}`)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/profile/me", applicant.Token, `{"phone": null}`)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var profile dto.ProfileResponse
	testutil.DecodeData(t, body, &profile)
	assert.Empty(t, profile.Phone)
	assert.Equal(t, "Kenya", profile.Nationality)
	assert.Equal(t, 35, profile.Completion)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profile/completion", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"completion":35`)
}

func TestAuth_ErrorsUseUniformBody(t *testing.T) {
	ts := testutil.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	decodeError(t, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	decodeError(t, body)

	// работодатель без company_name
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "e@test.com", "password": testutil.TestPassword, "role": "EMPLOYER",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	errResp := decodeError(t, body)
	assert.NotEmpty(t, errResp.Message)

	// регистрация админа запрещена
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "a@test.com", "password": testutil.TestPassword, "role": "ADMIN",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	applicant := ts.RegisterApplicant(t, "applicant@test.com")
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var me dto.UserDTO
	testutil.DecodeData(t, body, &me)
	assert.Equal(t, "applicant@test.com", me.Email)
	assert.NotEmpty(t, me.ProfileID)
}

func TestRoleGuards(t *testing.T) {
	ts := testutil.NewTestServer(t)
	applicant := ts.RegisterApplicant(t, "applicant@test.com")
	employer := ts.RegisterEmployer(t, "employer@test.com", "Gulf Staffing")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/job-orders", applicant.Token, map[string]interface{}{
		"title": "Nope", "description": "x", "location": "y",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/employer/dashboard", applicant.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/profile/me", employer.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/stats", employer.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/complaints", employer.Token, map[string]string{
		"category": "OTHER", "description": "Employers cannot complain here",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdminEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)
	admin := ts.LoginAdmin(t)
	employer := ts.RegisterEmployer(t, "employer@test.com", "Gulf Staffing")
	applicant := ts.RegisterApplicant(t, "applicant@test.com")
	jobOrder := ts.CreateJobOrder(t, employer.Token, "Driver", 1)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/applications/job-orders/"+jobOrder.ID, applicant.Token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var application models.Application
	testutil.DecodeData(t, body, &application)

	// --- Жалоба и модерация ---
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/complaints", applicant.Token, map[string]string{
		"category": "EMPLOYER_ISSUE", "description": "Contract terms changed after arrival",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var complaint models.Complaint
	testutil.DecodeData(t, body, &complaint)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/admin/complaints/"+complaint.ID, admin.Token, map[string]interface{}{
		"status": "IN_REVIEW", "escalation_level": 2,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/admin/complaints/"+complaint.ID, admin.Token, map[string]interface{}{
		"escalation_level": 1,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	// --- Чтение без ограничения владельцем ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/applications", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"total":1`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/job-orders", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"total":1`)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/job-orders/"+jobOrder.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	// Менять воронку и вакансии может только владелец
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/applications/"+application.ID+"/status", admin.Token, map[string]string{
		"status": "SHORTLISTED",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/job-orders/"+jobOrder.ID, admin.Token, map[string]interface{}{
		"title": "Renamed by admin",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/job-orders/"+jobOrder.ID, admin.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// --- Статистика ---
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/admin/stats", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var stats dto.PlatformStats
	testutil.DecodeData(t, body, &stats)
	assert.Equal(t, int64(1), stats.ApplicationsByStage[models.ApplicationStatusApplied])
	assert.Equal(t, int64(1), stats.ComplaintsByStatus[models.ComplaintStatusInReview])

	// --- Просроченные вакансии ---
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/job-orders/"+jobOrder.ID, employer.Token, map[string]interface{}{
		"expires_at": time.Now().UTC().Add(-time.Hour),
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/admin/job-orders/expire", admin.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var expired dto.ExpireJobOrdersResponse
	testutil.DecodeData(t, body, &expired)
	assert.Equal(t, int64(1), expired.Expired)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/applications/job-orders/"+jobOrder.ID, ts.RegisterApplicant(t, "late@test.com").Token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)

	// --- Блокировка пользователя ---
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/admin/users/"+applicant.User.ID+"/active", admin.Token, map[string]bool{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/applications/my", applicant.Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestEmployerDocumentsAndDashboard(t *testing.T) {
	ts := testutil.NewTestServer(t)
	admin := ts.LoginAdmin(t)
	employer := ts.RegisterEmployer(t, "employer@test.com", "Gulf Staffing")
	ts.CreateJobOrder(t, employer.Token, "Driver", 3)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/employer/me/documents", employer.Token, map[string]string{
		"name": "Commercial registration",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	var withDoc models.Employer
	testutil.DecodeData(t, body, &withDoc)
	require.Len(t, withDoc.VerificationDocs, 1)

	docPath := "/api/v1/admin/employers/" + withDoc.ID + "/documents/" + withDoc.VerificationDocs[0].ID
	res, body = ts.SendRequest(t, http.MethodPatch, docPath, admin.Token, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/employer/me", employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var me models.Employer
	testutil.DecodeData(t, body, &me)
	assert.True(t, me.IsVerified)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/employer/dashboard", employer.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	var dashboard dto.EmployerDashboard
	testutil.DecodeData(t, body, &dashboard)
	assert.Equal(t, 3, dashboard.TotalPositions)
	assert.Zero(t, dashboard.TotalApplicants)
}

func TestLoginRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter, err := ratelimit.NewFixedWindowLimiter(client, "test", "login", 2, time.Minute)
	require.NoError(t, err)

	ts := testutil.NewTestServerWithInfra(t, app.Infrastructure{
		Policy:       algorithms.PolicyPermissive,
		LoginLimiter: limiter,
	})

	creds := map[string]string{"email": "nobody@test.com", "password": testutil.TestPassword}
	for i := 0; i < 2; i++ {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode, body)
	decodeError(t, body)
}
