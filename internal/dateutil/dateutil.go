package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses a user-supplied date token: "today", "yesterday",
// "tomorrow", or an ISO date (YYYY-MM-DD, interpreted as local midnight).
func ParseDate(input string) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "today":
		return time.Now(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1), nil
	case "tomorrow":
		return time.Now().AddDate(0, 0, 1), nil
	}

	t, err := time.ParseInLocation("2006-01-02", input, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or 'today', 'yesterday', 'tomorrow'", input)
	}
	return t, nil
}

// Range is a half-open [Start, End) reporting interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// DayRange returns the local calendar day containing the parsed input.
func DayRange(input string) (Range, error) {
	t, err := ParseDate(input)
	if err != nil {
		return Range{}, err
	}
	start := StartOfDay(t)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}, nil
}

// WeekRange returns the Monday-to-Monday week containing the input. The
// tokens "this week"/"week" and "last week" are accepted alongside dates.
func WeekRange(input string) (Range, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	var t time.Time
	switch input {
	case "this week", "week", "today":
		t = time.Now()
	case "last week":
		t = time.Now().AddDate(0, 0, -7)
	default:
		parsed, err := ParseDate(input)
		if err != nil {
			return Range{}, err
		}
		t = parsed
	}

	start := StartOfDay(startOfWeek(t))
	return Range{Start: start, End: start.AddDate(0, 0, 7)}, nil
}

// MonthRange returns the calendar month containing the input. The tokens
// "this month"/"month" and "last month" are accepted alongside dates.
func MonthRange(input string) (Range, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	var t time.Time
	switch input {
	case "this month", "month", "today":
		t = time.Now()
	case "last month":
		now := time.Now()
		t = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
	default:
		parsed, err := ParseDate(input)
		if err != nil {
			return Range{}, err
		}
		t = parsed
	}

	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Range{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// startOfWeek returns the Monday of the ISO week containing t.
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	return t.AddDate(0, 0, -(wd - 1))
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameLocalDay reports whether two times fall on the same local calendar
// day.
func SameLocalDay(a, b time.Time) bool {
	al, bl := a.Local(), b.Local()
	ay, am, ad := al.Date()
	by, bm, bd := bl.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the current local calendar day.
func IsToday(t time.Time) bool {
	return SameLocalDay(t, time.Now())
}

// FormatDateTime renders a timestamp in local time for display.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// FormatDate renders a date in local time for display.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// FormatElapsedHHMMSS renders seconds as HH:MM:SS for live timers.
func FormatElapsedHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
