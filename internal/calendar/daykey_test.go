package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected DayParts
		ok       bool
	}{
		{name: "Valid key", key: "2026-02-22", expected: DayParts{Year: 2026, Month: 2, Day: 22}, ok: true},
		{name: "Zero month rejected", key: "2026-00-22", ok: false},
		{name: "Zero day rejected", key: "2026-02-00", ok: false},
		{name: "Not a date", key: "not-a-date", ok: false},
		{name: "Missing day component", key: "2026-02", ok: false},
		{name: "Empty string", key: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, ok := ParseDayKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, parts)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		delta    int
		expected string
	}{
		{name: "Rolls over a year boundary", key: "2025-12-31", delta: 1, expected: "2026-01-01"},
		{name: "Steps back into a leap day", key: "2024-03-01", delta: -1, expected: "2024-02-29"},
		{name: "Steps back into February in a common year", key: "2025-03-01", delta: -1, expected: "2025-02-28"},
		{name: "Large positive delta", key: "2026-01-01", delta: 60, expected: "2026-03-02"},
		{name: "Zero delta is identity", key: "2026-02-22", delta: 0, expected: "2026-02-22"},
		{name: "Invalid input passes through unchanged", key: "invalid", delta: 3, expected: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddDays(tt.key, tt.delta))
		})
	}
}

func TestDayKey_TimezoneAware(t *testing.T) {
	instant := time.Date(2024, 1, 1, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01", DayKey(instant, "UTC"))
	assert.Equal(t, "2023-12-31", DayKey(instant, "America/Chicago"))
}

func TestDayKey_UnknownZoneFallsBackToUTC(t *testing.T) {
	instant := time.Date(2024, 1, 1, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-01", DayKey(instant, "Not/AZone"))
}

func TestDayRange(t *testing.T) {
	r, ok := DayRange("2026-02-22", "UTC")

	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC), r.Start.UTC())
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), r.End.UTC())
}

func TestDayRange_InvalidKey(t *testing.T) {
	_, ok := DayRange("garbage", "UTC")
	assert.False(t, ok)
}

func TestDayRange_ChicagoDST(t *testing.T) {
	// 2024-03-10 is the spring-forward date in Chicago: the local day is
	// only 23 hours long and the range must reflect the offset change.
	r, ok := DayRange("2024-03-10", "America/Chicago")

	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC), r.Start.UTC())
	assert.Equal(t, time.Date(2024, 3, 11, 5, 0, 0, 0, time.UTC), r.End.UTC())
	assert.Equal(t, 23*time.Hour, r.End.Sub(r.Start))
}

func TestWeekRange(t *testing.T) {
	r, ok := WeekRange("2026-02-16", "UTC")

	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), r.Start.UTC())
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), r.End.UTC())
}

func TestWeekNavigation(t *testing.T) {
	now := time.Date(2026, 2, 22, 14, 0, 0, 0, time.UTC)

	startKey := CurrentWeekStartKey(now, "UTC")
	assert.Equal(t, "2026-02-16", startKey)

	assert.Equal(t, "2026-03-02", AddWeeks(startKey, 2))
	assert.Equal(t, "2026-02-09", AddWeeks(startKey, -1))

	noon := WeekStartKeyTime(startKey, "UTC")
	assert.Equal(t, time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC), noon.UTC())
}

func TestDayKeyTime(t *testing.T) {
	t.Run("Local noon in the zone", func(t *testing.T) {
		instant := DayKeyTime("2026-02-22", "America/Chicago")
		// Chicago is UTC-6 in February.
		assert.Equal(t, time.Date(2026, 2, 22, 18, 0, 0, 0, time.UTC), instant.UTC())
	})

	t.Run("Unparseable key yields zero time", func(t *testing.T) {
		assert.True(t, DayKeyTime("garbage", "UTC").IsZero())
	})
}
