package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 B"},
		{512, "512.00 B"},
		{1536, "1.50 KB"},
		{1 << 30, "1.00 GB"},
		{5 * (1 << 40), "5.00 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

func TestUsagePercent(t *testing.T) {
	assert.Equal(t, 0.0, UsagePercent(10, 0))
	assert.Equal(t, 50.0, UsagePercent(5, 10))
	assert.Equal(t, 100.0, UsagePercent(20, 10))
	assert.Equal(t, 0.0, UsagePercent(-5, 10))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0d 0h 0m", FormatUptime(0))
	assert.Equal(t, "1d 2h 3m", FormatUptime(86400+2*3600+3*60+59))
}

func TestFormatSession(t *testing.T) {
	assert.Equal(t, "5m", FormatSession(5*time.Minute))
	assert.Equal(t, "2h 0m", FormatSession(2*time.Hour))
	assert.Equal(t, "1d 1h 1m", FormatSession(25*time.Hour+time.Minute))
	assert.Equal(t, "0m", FormatSession(-time.Hour))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", Clip("short", 5))
	assert.Equal(t, "abc...", Clip("abcdef", 3))
	assert.Equal(t, "añé...", Clip("añéü", 3))
}

func TestVerbosity(t *testing.T) {
	assert.Equal(t, Basic, VerbosityFromCount(0))
	assert.Equal(t, Detailed, VerbosityFromCount(2))
	assert.Equal(t, Full, VerbosityFromCount(7))

	v, err := ParseRunLevel("deep")
	assert.NoError(t, err)
	assert.Equal(t, Full, v)
	assert.Equal(t, "deep", v.RunLevel())
	assert.Equal(t, "Full", v.String())

	_, err = ParseRunLevel("max")
	assert.Error(t, err)
}
