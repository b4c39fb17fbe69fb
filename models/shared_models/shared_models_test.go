package shared_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", day.Format(DayFormat))

	_, err = ParseDay("10-06-2025")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)

	_, err = ParseDay("2025-13-01")
	assert.Error(t, err)
}

func TestNormalizeDays(t *testing.T) {
	days, err := NormalizeDays([]string{"2025-06-12", "2025-06-10", "2025-06-12", "2025-06-11"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, days)

	_, err = NormalizeDays([]string{"2025-06-10", "not-a-date"})
	assert.Error(t, err)

	days, err = NormalizeDays(nil)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestExpandDayRange(t *testing.T) {
	days, err := ExpandDayRange("2025-06-10", "2025-06-12")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, days)

	days, err = ExpandDayRange("2025-06-10", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10"}, days)

	_, err = ExpandDayRange("2025-06-12", "2025-06-10")
	assert.Error(t, err)

	_, err = ExpandDayRange("2025-01-01", "2027-01-01")
	assert.Error(t, err, "range above the cap must be rejected")
}

func TestIsOccupyingStatus(t *testing.T) {
	assert.True(t, IsOccupyingStatus(BookingStatusPending))
	assert.True(t, IsOccupyingStatus(BookingStatusActive))
	assert.False(t, IsOccupyingStatus(BookingStatusRejected))
	assert.False(t, IsOccupyingStatus(BookingStatusCancelled))
	assert.False(t, IsOccupyingStatus(""))
}
