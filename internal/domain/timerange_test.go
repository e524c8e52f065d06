package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) TimeRange {
	t.Helper()

	startTime, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	endTime, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)

	rng, err := NewTimeRange(startTime, endTime)
	require.NoError(t, err)
	return rng
}

func TestNewTimeRange_Validation(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("end before start", func(t *testing.T) {
		_, err := NewTimeRange(start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("end equals start", func(t *testing.T) {
		_, err := NewTimeRange(start, start)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("zero times", func(t *testing.T) {
		_, err := NewTimeRange(time.Time{}, start)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("valid range", func(t *testing.T) {
		rng, err := NewTimeRange(start, start.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, rng.Duration())
	})
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z")

	tests := []struct {
		name     string
		other    TimeRange
		expected bool
	}{
		{
			name:     "identical ranges overlap",
			other:    mustRange(t, "2026-09-01T10:00:00Z", "2026-09-01T12:00:00Z"),
			expected: true,
		},
		{
			name:     "partial overlap at the end",
			other:    mustRange(t, "2026-09-01T11:00:00Z", "2026-09-01T13:00:00Z"),
			expected: true,
		},
		{
			name:     "contained range overlaps",
			other:    mustRange(t, "2026-09-01T10:30:00Z", "2026-09-01T11:30:00Z"),
			expected: true,
		},
		{
			name:     "back-to-back after does not overlap",
			other:    mustRange(t, "2026-09-01T12:00:00Z", "2026-09-01T14:00:00Z"),
			expected: false,
		},
		{
			name:     "back-to-back before does not overlap",
			other:    mustRange(t, "2026-09-01T08:00:00Z", "2026-09-01T10:00:00Z"),
			expected: false,
		},
		{
			name:     "disjoint range does not overlap",
			other:    mustRange(t, "2026-09-02T10:00:00Z", "2026-09-02T12:00:00Z"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			// Пересечение симметрично
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}
