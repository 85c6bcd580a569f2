package workers_test

import (
	"context"
	"testing"
	"time"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
	"recruit_backend/internal/services/dto"
	"recruit_backend/internal/testutil"
	"recruit_backend/internal/workers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobOrderWorker_RunOnceExpiresPastDue(t *testing.T) {
	db := testutil.NewTestDB(t)
	container, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	employer := testutil.RegisterCaller(t, db, container.AuthService, models.UserRoleEmployer, "employer@test.com")

	past := time.Now().UTC().Add(-time.Minute)
	created, err := container.JobOrderService.CreateJobOrder(db, employer, &dto.CreateJobOrderRequest{
		Title: "Welder", Description: "Shipyard", Location: "Abu Dhabi", ExpiresAt: &past,
	})
	require.NoError(t, err)

	worker := workers.NewJobOrderWorker(db, container.JobOrderService, time.Hour)
	assert.Equal(t, int64(1), worker.RunOnce(context.Background()))
	assert.Zero(t, worker.RunOnce(context.Background()))

	details, err := container.JobOrderService.GetJobOrder(db, employer, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobOrderStatusExpired, details.Status)
}

func TestJobOrderWorker_StartStopsWithContext(t *testing.T) {
	db := testutil.NewTestDB(t)
	container, _ := testutil.NewServices(t, algorithms.PolicyPermissive)
	employer := testutil.RegisterCaller(t, db, container.AuthService, models.UserRoleEmployer, "employer@test.com")

	past := time.Now().UTC().Add(-time.Minute)
	created, err := container.JobOrderService.CreateJobOrder(db, employer, &dto.CreateJobOrderRequest{
		Title: "Painter", Description: "Tower", Location: "Doha", ExpiresAt: &past,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewJobOrderWorker(db, container.JobOrderService, 10*time.Millisecond).Start(ctx)

	require.Eventually(t, func() bool {
		details, err := container.JobOrderService.GetJobOrder(db, employer, created.ID)
		return err == nil && details.Status == models.JobOrderStatusExpired
	}, 2*time.Second, 20*time.Millisecond)
}

func TestJobOrderWorker_DisabledWithZeroInterval(t *testing.T) {
	db := testutil.NewTestDB(t)
	container, _ := testutil.NewServices(t, algorithms.PolicyPermissive)

	// не должен паниковать и не должен запускать горутину
	workers.NewJobOrderWorker(db, container.JobOrderService, 0).Start(context.Background())
}
