package booking_models

import "sort"

// Conflict reasons. A day that is both booked and blocked is reported once,
// with "booked" taking precedence: the booking row is the more specific fact.
const (
	ConflictReasonBooked  = "booked"
	ConflictReasonBlocked = "blocked"
)

// DateConflict is one requested day that is already occupied.
type DateConflict struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ComputeConflicts intersects the requested days with the occupied set.
// Inputs are YYYY-MM-DD strings; the result is sorted by date and contains
// each conflicting day exactly once.
func ComputeConflicts(requested, booked, blocked []string) []DateConflict {
	bookedSet := make(map[string]struct{}, len(booked))
	for _, d := range booked {
		bookedSet[d] = struct{}{}
	}
	blockedSet := make(map[string]struct{}, len(blocked))
	for _, d := range blocked {
		blockedSet[d] = struct{}{}
	}

	seen := make(map[string]struct{}, len(requested))
	conflicts := make([]DateConflict, 0)
	for _, d := range requested {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}

		if _, ok := bookedSet[d]; ok {
			conflicts = append(conflicts, DateConflict{Date: d, Reason: ConflictReasonBooked})
			continue
		}
		if _, ok := blockedSet[d]; ok {
			conflicts = append(conflicts, DateConflict{Date: d, Reason: ConflictReasonBlocked})
		}
	}

	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].Date < conflicts[j].Date })
	return conflicts
}
