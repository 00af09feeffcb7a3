// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const minutesInAnHour = 60

// Period is a named reporting period relative to today.
type Period string

const (
	PeriodToday   Period = "today"
	Period7Days   Period = "7days"
	Period14Days  Period = "14days"
	Period30Days  Period = "30days"
	Period90Days  Period = "90days"
	PeriodAllTime Period = "all-time"
)

// Range maps a period to its offset in days from today.
var Range = map[Period]int{
	PeriodToday:   0,
	Period7Days:   -6,
	Period14Days:  -13,
	Period30Days:  -29,
	Period90Days:  -89,
	PeriodAllTime: 0,
}

var PeriodCollection = []Period{
	PeriodToday,
	Period7Days,
	Period14Days,
	Period30Days,
	Period90Days,
	PeriodAllTime,
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// FormatDuration renders a duration as HH:MM:SS, clamping negatives to zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := int(d.Seconds())
	hrs := secs / 3600
	mins := (secs % 3600) / 60
	secs %= 60

	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

// FormatMins renders a minutes value as e.g. "9h 15m".
func FormatMins(val int) string {
	hrs, mins := MinsToHoursAndMins(val)
	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	return fmt.Sprintf("%dh %02dm", hrs, mins)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// DateOf returns the calendar date of t in t's location as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.Format(time.DateOnly)
}

// PrevDate returns the calendar date one day before date (YYYY-MM-DD).
func PrevDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}

	return t.AddDate(0, 0, -1).Format(time.DateOnly)
}

// ISOWeekOf returns the ISO year and week for a YYYY-MM-DD date.
func ISOWeekOf(date string) (year, week int) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return 0, 0
	}

	return t.ISOWeek()
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}
