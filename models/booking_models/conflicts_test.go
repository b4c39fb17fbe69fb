package booking_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeConflicts(t *testing.T) {
	booked := []string{"2025-06-12"}
	blocked := []string{"2025-06-10"}

	conflicts := ComputeConflicts([]string{"2025-06-10", "2025-06-11", "2025-06-12"}, booked, blocked)

	assert.Equal(t, []DateConflict{
		{Date: "2025-06-10", Reason: ConflictReasonBlocked},
		{Date: "2025-06-12", Reason: ConflictReasonBooked},
	}, conflicts)
}

func TestComputeConflictsNoOverlap(t *testing.T) {
	conflicts := ComputeConflicts([]string{"2025-07-01", "2025-07-02"}, []string{"2025-06-12"}, []string{"2025-06-10"})
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
}

func TestComputeConflictsBookedTakesPrecedence(t *testing.T) {
	conflicts := ComputeConflicts([]string{"2025-06-10"}, []string{"2025-06-10"}, []string{"2025-06-10"})
	assert.Equal(t, []DateConflict{{Date: "2025-06-10", Reason: ConflictReasonBooked}}, conflicts)
}

func TestComputeConflictsDeduplicatesRequested(t *testing.T) {
	conflicts := ComputeConflicts([]string{"2025-06-10", "2025-06-10"}, nil, []string{"2025-06-10"})
	assert.Len(t, conflicts, 1)
}

func TestComputeConflictsSortedByDate(t *testing.T) {
	conflicts := ComputeConflicts(
		[]string{"2025-06-30", "2025-06-01", "2025-06-15"},
		[]string{"2025-06-30", "2025-06-01"},
		[]string{"2025-06-15"},
	)
	assert.Equal(t, []DateConflict{
		{Date: "2025-06-01", Reason: ConflictReasonBooked},
		{Date: "2025-06-15", Reason: ConflictReasonBlocked},
		{Date: "2025-06-30", Reason: ConflictReasonBooked},
	}, conflicts)
}

func TestComputeConflictsOnlyRequestedDaysReported(t *testing.T) {
	conflicts := ComputeConflicts([]string{"2025-06-11"}, []string{"2025-06-12"}, []string{"2025-06-10"})
	assert.Empty(t, conflicts, "occupied days outside the request must not appear")
}
