package algorithms

import "recruit_backend/internal/models"

// Fulfillment is the read-time accounting for a single job order.
// Nothing here is stored; it is recomputed from the application set.
type Fulfillment struct {
	Positions      int                              `json:"positions"`
	ApplicantCount int                              `json:"applicant_count"`
	StatusCounts   map[models.ApplicationStatus]int `json:"status_counts"`
	SelectedCount  int                              `json:"selected_count"`
	// Not capped at 100: over-selection is reported as is.
	FillPercentage float64  `json:"fill_percentage"`
	OverFilled     bool     `json:"over_filled"`
	Pipeline       Pipeline `json:"pipeline"`
}

// Pipeline groups applications by stage for dashboard summaries.
type Pipeline struct {
	Applied     int `json:"applied"`
	Shortlisted int `json:"shortlisted"`
	Interviewed int `json:"interviewed"`
	Selected    int `json:"selected"`
	Processing  int `json:"processing"`
	Deployed    int `json:"deployed"`
	Rejected    int `json:"rejected"`
}

// Add merges another pipeline into p.
func (p *Pipeline) Add(o Pipeline) {
	p.Applied += o.Applied
	p.Shortlisted += o.Shortlisted
	p.Interviewed += o.Interviewed
	p.Selected += o.Selected
	p.Processing += o.Processing
	p.Deployed += o.Deployed
	p.Rejected += o.Rejected
}

// StatusCounts maps every observed status to its count.
func StatusCounts(statuses []models.ApplicationStatus) map[models.ApplicationStatus]int {
	counts := make(map[models.ApplicationStatus]int)
	for _, s := range statuses {
		counts[s]++
	}
	return counts
}

// SelectedCount counts applications that hold a position (SELECTED + DEPLOYED).
func SelectedCount(counts map[models.ApplicationStatus]int) int {
	return counts[models.ApplicationStatusSelected] + counts[models.ApplicationStatusDeployed]
}

// FillPercentage = selected / positions * 100, uncapped. Zero positions yields 0.
func FillPercentage(selected, positions int) float64 {
	if positions <= 0 {
		return 0
	}
	return float64(selected) / float64(positions) * 100
}

// PipelineFromCounts projects status counts onto pipeline stages.
func PipelineFromCounts(counts map[models.ApplicationStatus]int) Pipeline {
	return Pipeline{
		Applied:     counts[models.ApplicationStatusApplied],
		Shortlisted: counts[models.ApplicationStatusShortlisted],
		Interviewed: counts[models.ApplicationStatusInterviewed],
		Selected:    counts[models.ApplicationStatusSelected],
		Processing:  counts[models.ApplicationStatusProcessing],
		Deployed:    counts[models.ApplicationStatusDeployed],
		Rejected:    counts[models.ApplicationStatusRejected],
	}
}

// ComputeFulfillment derives all aggregates for a job order from its applications.
func ComputeFulfillment(positions int, statuses []models.ApplicationStatus) Fulfillment {
	counts := StatusCounts(statuses)
	selected := SelectedCount(counts)
	return Fulfillment{
		Positions:      positions,
		ApplicantCount: len(statuses),
		StatusCounts:   counts,
		SelectedCount:  selected,
		FillPercentage: FillPercentage(selected, positions),
		OverFilled:     positions > 0 && selected > positions,
		Pipeline:       PipelineFromCounts(counts),
	}
}
