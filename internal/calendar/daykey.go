// Package calendar converts between YYYY-MM-DD day keys and absolute time
// ranges in a business timezone. Day keys are pagination cursors for the
// admin order and review listings; they are derived at read time and never
// persisted. All functions are pure and total: a malformed key yields a
// zero value or passes through unchanged instead of failing the request.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultTimeZone is the fixed business timezone used for admin bucketing.
const DefaultTimeZone = "America/Chicago"

// WeekDays is the length of the trailing week window in the admin pager.
const WeekDays = 7

// DayParts is a parsed calendar date, timezone-agnostic.
type DayParts struct {
	Year  int
	Month int
	Day   int
}

// Range is a half-open instant interval [Start, End).
type Range struct {
	Start time.Time
	End   time.Time
}

// locationCache avoids re-parsing tzdata on every call. Entries are
// immutable once stored; the map only ever grows.
var (
	locationMu    sync.RWMutex
	locationCache = map[string]*time.Location{}
)

// loadLocation resolves a timezone name through the cache. Unknown names
// degrade to UTC so a bad zone string cannot take down a listing.
func loadLocation(name string) *time.Location {
	locationMu.RLock()
	loc, ok := locationCache[name]
	locationMu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}

	locationMu.Lock()
	locationCache[name] = loc
	locationMu.Unlock()
	return loc
}

// ParseDayKey splits a YYYY-MM-DD key into its components. Returns false for
// malformed keys and for zero components such as a "00" month.
func ParseDayKey(key string) (DayParts, bool) {
	fields := strings.Split(key, "-")
	if len(fields) < 3 {
		return DayParts{}, false
	}

	year, err := strconv.Atoi(fields[0])
	if err != nil || year <= 0 {
		return DayParts{}, false
	}
	month, err := strconv.Atoi(fields[1])
	if err != nil || month <= 0 {
		return DayParts{}, false
	}
	day, err := strconv.Atoi(fields[2])
	if err != nil || day <= 0 {
		return DayParts{}, false
	}

	return DayParts{Year: year, Month: month, Day: day}, true
}

func formatDayKey(p DayParts) string {
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
}

// DayKey returns the calendar date of the instant in the given timezone.
// Two instants on different calendar dates in the zone always yield
// different keys, even across DST transitions.
func DayKey(t time.Time, timeZone string) string {
	return t.In(loadLocation(timeZone)).Format("2006-01-02")
}

// AddDays adds whole days to a day key using pure proleptic-Gregorian date
// arithmetic. Adding days to a calendar date is timezone-independent, so the
// math runs in UTC on purpose. An unparseable key passes through unchanged.
func AddDays(key string, delta int) string {
	parts, ok := ParseDayKey(key)
	if !ok {
		return key
	}
	d := time.Date(parts.Year, time.Month(parts.Month), parts.Day+delta, 0, 0, 0, 0, time.UTC)
	return formatDayKey(DayParts{Year: d.Year(), Month: int(d.Month()), Day: d.Day()})
}

// DayRange returns the half-open interval covering the named calendar day in
// the given timezone: [local midnight, next local midnight). The boundaries
// are built with the zone's tzdata, so each one carries the UTC offset in
// force at that instant rather than a fixed offset.
func DayRange(key, timeZone string) (Range, bool) {
	return keyRange(key, timeZone, 1)
}

// WeekRange returns the half-open interval spanning WeekDays calendar days
// starting at weekStartKey, using the same local-midnight convention as
// DayRange.
func WeekRange(weekStartKey, timeZone string) (Range, bool) {
	return keyRange(weekStartKey, timeZone, WeekDays)
}

func keyRange(key, timeZone string, days int) (Range, bool) {
	parts, ok := ParseDayKey(key)
	if !ok {
		return Range{}, false
	}
	loc := loadLocation(timeZone)
	start := time.Date(parts.Year, time.Month(parts.Month), parts.Day, 0, 0, 0, 0, loc)
	end := time.Date(parts.Year, time.Month(parts.Month), parts.Day+days, 0, 0, 0, 0, loc)
	return Range{Start: start, End: end}, true
}

// DayKeyTime returns a representative instant for the day: local noon in the
// given timezone. Noon avoids DST-edge ambiguity when the instant is later
// formatted for display. An unparseable key falls back to naive parsing and
// yields the zero time if even that fails.
func DayKeyTime(key, timeZone string) time.Time {
	parts, ok := ParseDayKey(key)
	if !ok {
		t, err := time.Parse("2006-01-02", key)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	loc := loadLocation(timeZone)
	return time.Date(parts.Year, time.Month(parts.Month), parts.Day, 12, 0, 0, 0, loc)
}

// CurrentWeekStartKey returns the day key exactly WeekDays-1 days before the
// instant's calendar day, i.e. the start of a trailing window that ends at
// (and includes) that day.
func CurrentWeekStartKey(t time.Time, timeZone string) string {
	return AddDays(DayKey(t, timeZone), -(WeekDays - 1))
}

// AddWeeks shifts a week start key by whole weeks.
func AddWeeks(weekStartKey string, delta int) string {
	return AddDays(weekStartKey, delta*WeekDays)
}

// WeekStartKeyTime returns the representative instant for a week start key.
func WeekStartKeyTime(weekStartKey, timeZone string) time.Time {
	return DayKeyTime(weekStartKey, timeZone)
}
