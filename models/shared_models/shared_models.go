package shared_models

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Booking lifecycle statuses. A date counts as occupied while any booking in
// pending or active references it.
const (
	BookingStatusPending   = "pending"
	BookingStatusActive    = "active"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
)

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// MaxRangeDays caps a single booking request's date range.
const MaxRangeDays = 366

// GenerateUUIDv7 generates a new UUIDv7
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}

// IsOccupyingStatus reports whether a booking in the given status holds its dates.
func IsOccupyingStatus(status string) bool {
	return status == BookingStatusPending || status == BookingStatusActive
}

// ParseDay parses a YYYY-MM-DD string into a UTC day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// NormalizeDays validates, deduplicates and sorts a list of YYYY-MM-DD strings.
func NormalizeDays(days []string) ([]string, error) {
	seen := make(map[string]struct{}, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		t, err := ParseDay(d)
		if err != nil {
			return nil, err
		}
		canonical := t.Format(DayFormat)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out, nil
}

// ExpandDayRange expands an inclusive start..end range into individual days.
func ExpandDayRange(start, end string) ([]string, error) {
	from, err := ParseDay(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDay(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("date range exceeds %d days", MaxRangeDays)
	}

	var out []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DayFormat))
	}
	return out, nil
}
