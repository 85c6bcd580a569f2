package algorithms

import (
	"testing"
	"time"

	"recruit_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPermissivePolicy_AcceptsAnyValidTarget(t *testing.T) {
	p := PolicyPermissive
	for _, from := range models.ApplicationStatuses {
		for _, to := range models.ApplicationStatuses {
			assert.True(t, p.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, p.CanTransition(models.ApplicationStatusApplied, "HIRED"))
	assert.False(t, p.CanTransition(models.ApplicationStatusApplied, ""))
}

func TestStrictPolicy(t *testing.T) {
	p := PolicyStrict

	cases := []struct {
		from, to models.ApplicationStatus
		want     bool
	}{
		{models.ApplicationStatusApplied, models.ApplicationStatusShortlisted, true},
		{models.ApplicationStatusApplied, models.ApplicationStatusSelected, false},
		{models.ApplicationStatusApplied, models.ApplicationStatusDeployed, false},
		{models.ApplicationStatusShortlisted, models.ApplicationStatusInterviewed, true},
		{models.ApplicationStatusSelected, models.ApplicationStatusProcessing, true},
		{models.ApplicationStatusProcessing, models.ApplicationStatusDeployed, true},
		{models.ApplicationStatusInterviewed, models.ApplicationStatusRejected, true},
		{models.ApplicationStatusShortlisted, models.ApplicationStatusApplied, false},
		{models.ApplicationStatusDeployed, models.ApplicationStatusRejected, false},
		{models.ApplicationStatusRejected, models.ApplicationStatusApplied, false},
		{models.ApplicationStatusSelected, models.ApplicationStatusSelected, true},
		{models.ApplicationStatusRejected, models.ApplicationStatusRejected, true},
		{models.ApplicationStatusApplied, "UNKNOWN", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStrictPolicy_AllowedTargets(t *testing.T) {
	got := PolicyStrict.AllowedTargets(models.ApplicationStatusApplied)
	assert.ElementsMatch(t, []models.ApplicationStatus{
		models.ApplicationStatusApplied,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusRejected,
	}, got)

	assert.Equal(t,
		[]models.ApplicationStatus{models.ApplicationStatusDeployed},
		PolicyStrict.AllowedTargets(models.ApplicationStatusDeployed),
	)
}

func TestPolicyFromConfig(t *testing.T) {
	assert.Equal(t, PolicyStrict, PolicyFromConfig(true))
	assert.Equal(t, PolicyPermissive, PolicyFromConfig(false))
	assert.Equal(t, "strict", PolicyStrict.String())
	assert.Equal(t, "permissive", PolicyPermissive.String())
}

func TestNextStatus(t *testing.T) {
	next, ok := NextStatus(models.ApplicationStatusProcessing)
	assert.True(t, ok)
	assert.Equal(t, models.ApplicationStatusDeployed, next)

	_, ok = NextStatus(models.ApplicationStatusDeployed)
	assert.False(t, ok)
	_, ok = NextStatus(models.ApplicationStatusRejected)
	assert.False(t, ok)
}

func TestStampMilestone_FirstWriteWins(t *testing.T) {
	app := &models.Application{}
	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	assert.True(t, StampMilestone(app, models.ApplicationStatusShortlisted, first))
	assert.False(t, StampMilestone(app, models.ApplicationStatusShortlisted, later))
	assert.Equal(t, first, *app.ShortlistedAt)

	assert.True(t, StampMilestone(app, models.ApplicationStatusInterviewed, later))
	assert.True(t, StampMilestone(app, models.ApplicationStatusSelected, later))
	assert.True(t, StampMilestone(app, models.ApplicationStatusDeployed, later))
	assert.False(t, StampMilestone(app, models.ApplicationStatusDeployed, later.Add(time.Hour)))
	assert.Equal(t, later, *app.DeployedAt)

	// Статусы без вехи ничего не пишут
	assert.False(t, StampMilestone(app, models.ApplicationStatusProcessing, later))
	assert.False(t, StampMilestone(app, models.ApplicationStatusRejected, later))
	assert.False(t, StampMilestone(app, models.ApplicationStatusApplied, later))
}
