package algorithms

import (
	"testing"

	"recruit_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeFulfillment_PartitionsApplicationSet(t *testing.T) {
	statuses := []models.ApplicationStatus{
		models.ApplicationStatusApplied,
		models.ApplicationStatusApplied,
		models.ApplicationStatusShortlisted,
		models.ApplicationStatusSelected,
		models.ApplicationStatusDeployed,
		models.ApplicationStatusRejected,
	}

	f := ComputeFulfillment(4, statuses)

	assert.Equal(t, 6, f.ApplicantCount)
	assert.Equal(t, 2, f.SelectedCount)
	assert.InDelta(t, 50.0, f.FillPercentage, 0.0001)
	assert.False(t, f.OverFilled)

	sum := 0
	for _, n := range f.StatusCounts {
		sum += n
	}
	assert.Equal(t, f.ApplicantCount, sum)
	assert.Equal(t, 2, f.Pipeline.Applied)
	assert.Equal(t, 1, f.Pipeline.Rejected)
	_, hasProcessing := f.StatusCounts[models.ApplicationStatusProcessing]
	assert.False(t, hasProcessing, "only observed statuses are keyed")
}

func TestComputeFulfillment_OverSelectionIsNotCapped(t *testing.T) {
	statuses := []models.ApplicationStatus{
		models.ApplicationStatusSelected,
		models.ApplicationStatusSelected,
		models.ApplicationStatusDeployed,
	}
	f := ComputeFulfillment(2, statuses)
	assert.InDelta(t, 150.0, f.FillPercentage, 0.0001)
	assert.True(t, f.OverFilled)
}

func TestComputeFulfillment_Empty(t *testing.T) {
	f := ComputeFulfillment(3, nil)
	assert.Equal(t, 0, f.ApplicantCount)
	assert.Equal(t, 0, f.SelectedCount)
	assert.Equal(t, 0.0, f.FillPercentage)
	assert.Empty(t, f.StatusCounts)
}

func TestFillPercentage_ZeroPositions(t *testing.T) {
	assert.Equal(t, 0.0, FillPercentage(5, 0))
	assert.InDelta(t, 100.0, FillPercentage(1, 1), 0.0001)
}

func TestPipeline_Add(t *testing.T) {
	p := Pipeline{Applied: 1, Selected: 2}
	p.Add(Pipeline{Applied: 3, Rejected: 1})
	assert.Equal(t, Pipeline{Applied: 4, Selected: 2, Rejected: 1}, p)
}
