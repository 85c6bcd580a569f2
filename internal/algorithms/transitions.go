package algorithms

import (
	"time"

	"recruit_backend/internal/models"
)

// TransitionPolicy decides which application status changes are legal.
type TransitionPolicy int

const (
	// PolicyPermissive accepts any valid target status. Milestones still latch.
	PolicyPermissive TransitionPolicy = iota
	// PolicyStrict allows only the next pipeline step, REJECTED from a
	// non-terminal state, or re-entering the current status.
	PolicyStrict
)

// PolicyFromConfig maps the workflow.strict_transitions flag to a policy.
func PolicyFromConfig(strict bool) TransitionPolicy {
	if strict {
		return PolicyStrict
	}
	return PolicyPermissive
}

func (p TransitionPolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "permissive"
}

// pipeline order; REJECTED is a side exit, not a step
var pipelineIndex = map[models.ApplicationStatus]int{
	models.ApplicationStatusApplied:     0,
	models.ApplicationStatusShortlisted: 1,
	models.ApplicationStatusInterviewed: 2,
	models.ApplicationStatusSelected:    3,
	models.ApplicationStatusProcessing:  4,
	models.ApplicationStatusDeployed:    5,
}

// IsTerminal reports whether no further movement is expected from the status.
func IsTerminal(s models.ApplicationStatus) bool {
	return s == models.ApplicationStatusDeployed || s == models.ApplicationStatusRejected
}

// NextStatus returns the following pipeline step, or false at the end / from REJECTED.
func NextStatus(s models.ApplicationStatus) (models.ApplicationStatus, bool) {
	idx, ok := pipelineIndex[s]
	if !ok || idx+1 >= len(pipelineIndex) {
		return "", false
	}
	return models.ApplicationStatuses[idx+1], true
}

// CanTransition reports whether from -> to is allowed under the policy.
// The target must always be one of the defined statuses.
func (p TransitionPolicy) CanTransition(from, to models.ApplicationStatus) bool {
	if !to.IsValid() {
		return false
	}
	if p == PolicyPermissive || from == to {
		return true
	}
	if IsTerminal(from) {
		return false
	}
	if to == models.ApplicationStatusRejected {
		return true
	}
	next, ok := NextStatus(from)
	return ok && next == to
}

// AllowedTargets lists the statuses reachable from the current one.
func (p TransitionPolicy) AllowedTargets(from models.ApplicationStatus) []models.ApplicationStatus {
	out := make([]models.ApplicationStatus, 0, len(models.ApplicationStatuses))
	for _, to := range models.ApplicationStatuses {
		if p.CanTransition(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// StampMilestone sets the timestamp matching the target status if it is unset.
// Returns true when a milestone was written for the first time.
func StampMilestone(app *models.Application, to models.ApplicationStatus, now time.Time) bool {
	var slot **time.Time
	switch to {
	case models.ApplicationStatusShortlisted:
		slot = &app.ShortlistedAt
	case models.ApplicationStatusInterviewed:
		slot = &app.InterviewedAt
	case models.ApplicationStatusSelected:
		slot = &app.SelectedAt
	case models.ApplicationStatusDeployed:
		slot = &app.DeployedAt
	default:
		return false
	}
	if *slot != nil {
		return false
	}
	t := now
	*slot = &t
	return true
}
