package algorithms

import (
	"strings"

	"recruit_backend/internal/models"
)

// Profile completion weights. They sum to exactly 100.
const (
	completionNameWeight        = 20
	completionPhoneWeight       = 15
	completionNationalityWeight = 15
	completionCVWeight          = 50
	completionMax               = 100
)

// ProfileCompletion returns how complete an applicant profile is (0-100).
func ProfileCompletion(p *models.Profile) int {
	if p == nil {
		return 0
	}
	score := 0
	if present(p.FirstName) && present(p.LastName) {
		score += completionNameWeight
	}
	if present(p.Phone) {
		score += completionPhoneWeight
	}
	if present(p.Nationality) {
		score += completionNationalityWeight
	}
	if len(p.CV()) > 0 {
		score += completionCVWeight
	}
	if score > completionMax {
		score = completionMax
	}
	return score
}

// MissingProfileFields lists the sections that would raise the completion score.
func MissingProfileFields(p *models.Profile) []string {
	missing := []string{}
	if p == nil {
		return []string{"name", "phone", "nationality", "cv"}
	}
	if !present(p.FirstName) || !present(p.LastName) {
		missing = append(missing, "name")
	}
	if !present(p.Phone) {
		missing = append(missing, "phone")
	}
	if !present(p.Nationality) {
		missing = append(missing, "nationality")
	}
	if len(p.CV()) == 0 {
		missing = append(missing, "cv")
	}
	return missing
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
