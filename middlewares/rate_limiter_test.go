package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomRate(t *testing.T) {
	rate, err := ParseCustomRate("10-2m")
	require.NoError(t, err)
	assert.Equal(t, int64(10), rate.Limit)
	assert.Equal(t, 2*time.Minute, rate.Period)

	rate, err = ParseCustomRate("20-10s")
	require.NoError(t, err)
	assert.Equal(t, int64(20), rate.Limit)
	assert.Equal(t, 10*time.Second, rate.Period)

	rate, err = ParseCustomRate("5-1h")
	require.NoError(t, err)
	assert.Equal(t, int64(5), rate.Limit)
	assert.Equal(t, time.Hour, rate.Period)
}

func TestParseCustomRateRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "10", "10-2d", "abc-1m", "10-xm"} {
		_, err := ParseCustomRate(s)
		assert.Error(t, err, s)
	}
}
