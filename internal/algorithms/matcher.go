package algorithms

import (
	"math"
	"strings"

	"recruit_backend/internal/models"
)

// PlaceholderMatchScore derives a deterministic 0-100 score for an applicant
// against a job order. It is not a model: completion (40 points) plus the share
// of required skills listed in the CV (60 points).
func PlaceholderMatchScore(job *models.JobOrder, profile *models.Profile) (float64, []string) {
	reasons := []string{}
	if job == nil || profile == nil {
		return 0, reasons
	}

	completion := float64(ProfileCompletion(profile))
	score := completion * 0.4
	if completion >= 80 {
		reasons = append(reasons, "Profile is mostly complete")
	}

	required := stringList(job.RequirementsDoc()["skills"])
	offered := stringList(profile.CV()["skills"])
	skillScore := calculateSkillOverlap(required, offered)
	score += skillScore
	if len(required) > 0 && skillScore > 0 {
		reasons = append(reasons, "Matching skills")
	}

	if score > 100 {
		score = 100
	}
	return math.Round(score*100) / 100, reasons
}

// calculateSkillOverlap returns 0-60 points; no requirement gives half points
func calculateSkillOverlap(required, offered []string) float64 {
	if len(required) == 0 {
		return 30
	}
	have := make(map[string]struct{}, len(offered))
	for _, s := range offered {
		have[s] = struct{}{}
	}
	matches := 0
	for _, r := range required {
		if _, ok := have[r]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(required)) * 60.0
}

// stringList accepts ["go", "sql"] or [{"name": "go"}] shapes, lowercased
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch t := it.(type) {
		case string:
			if s := strings.ToLower(strings.TrimSpace(t)); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if name, ok := t["name"].(string); ok && strings.TrimSpace(name) != "" {
				out = append(out, strings.ToLower(strings.TrimSpace(name)))
			}
		}
	}
	return out
}
