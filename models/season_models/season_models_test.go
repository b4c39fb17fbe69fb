package season_models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	require.NoError(t, err)
	return day
}

func TestResolveLabel(t *testing.T) {
	seasons := []Season{
		{Label: "high", StartDate: "2025-06-01", EndDate: "2025-08-31"},
		{Label: "shoulder", StartDate: "2025-09-01", EndDate: "2025-10-15"},
	}

	assert.Equal(t, "high", ResolveLabel(mustDay(t, "2025-07-15"), seasons, DefaultLabel))
	assert.Equal(t, "shoulder", ResolveLabel(mustDay(t, "2025-09-01"), seasons, DefaultLabel))
	assert.Equal(t, "low", ResolveLabel(mustDay(t, "2025-11-01"), seasons, DefaultLabel))
}

func TestResolveLabelRangeIsInclusive(t *testing.T) {
	seasons := []Season{{Label: "high", StartDate: "2025-06-01", EndDate: "2025-08-31"}}

	assert.Equal(t, "high", ResolveLabel(mustDay(t, "2025-06-01"), seasons, DefaultLabel))
	assert.Equal(t, "high", ResolveLabel(mustDay(t, "2025-08-31"), seasons, DefaultLabel))
	assert.Equal(t, "low", ResolveLabel(mustDay(t, "2025-05-31"), seasons, DefaultLabel))
	assert.Equal(t, "low", ResolveLabel(mustDay(t, "2025-09-01"), seasons, DefaultLabel))
}

func TestResolveLabelFirstMatchWins(t *testing.T) {
	seasons := []Season{
		{Label: "first", StartDate: "2025-06-01", EndDate: "2025-06-30"},
		{Label: "second", StartDate: "2025-06-15", EndDate: "2025-07-15"},
	}
	assert.Equal(t, "first", ResolveLabel(mustDay(t, "2025-06-20"), seasons, DefaultLabel))
}

func TestResolveLabelNoSeasons(t *testing.T) {
	assert.Equal(t, "low", ResolveLabel(mustDay(t, "2025-06-20"), nil, DefaultLabel))
	assert.Equal(t, "custom", ResolveLabel(mustDay(t, "2025-06-20"), nil, "custom"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2025-01-01", "2025-01-31", "2025-02-01", "2025-02-28", false},
		{"disjoint after", "2025-03-01", "2025-03-31", "2025-02-01", "2025-02-28", false},
		{"touching endpoints", "2025-01-01", "2025-02-01", "2025-02-01", "2025-02-28", true},
		{"contained", "2025-02-05", "2025-02-10", "2025-02-01", "2025-02-28", true},
		{"identical", "2025-02-01", "2025-02-28", "2025-02-01", "2025-02-28", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestHasOverlap(t *testing.T) {
	existingID := uuid.New()
	seasons := []Season{
		{ID: existingID, Label: "high", StartDate: "2025-06-01", EndDate: "2025-08-31"},
	}

	assert.True(t, HasOverlap(seasons, "2025-08-01", "2025-09-15", uuid.Nil))
	assert.False(t, HasOverlap(seasons, "2025-09-01", "2025-09-15", uuid.Nil))
	assert.False(t, HasOverlap(seasons, "2025-06-01", "2025-08-31", existingID),
		"updating a season must not conflict with itself")
}

func TestNewSeasonValidatesRange(t *testing.T) {
	providerID := uuid.New()

	season, err := NewSeason(providerID, "high", "2025-06-01", "2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, "high", season.Label)
	assert.Equal(t, "2025-06-01", season.StartDate)
	assert.Equal(t, "2025-08-31", season.EndDate)

	_, err = NewSeason(providerID, "high", "2025-08-31", "2025-06-01")
	assert.Error(t, err)

	_, err = NewSeason(providerID, "high", "bad", "2025-06-01")
	assert.Error(t, err)
}

func TestNormalizeRange(t *testing.T) {
	start, end, err := NormalizeRange("2025-06-01", "2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", start)
	assert.Equal(t, "2025-08-31", end)

	start, end, err = NormalizeRange("2025-06-01", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, start, end)

	_, _, err = NormalizeRange("2025-08-31", "2025-06-01")
	assert.Error(t, err)

	_, _, err = NormalizeRange("June 1st", "2025-08-31")
	assert.Error(t, err)

	_, _, err = NormalizeRange("2025-06-01", "")
	assert.Error(t, err)
}
