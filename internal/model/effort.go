package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Work-time unit sizes in hours.
const (
	hoursPerDay   = 8
	hoursPerWeek  = 40
	hoursPerMonth = 160
)

// EffortUnit is the unit letter of an effort estimate.
type EffortUnit byte

const (
	UnitHours  EffortUnit = 'h'
	UnitDays   EffortUnit = 'd'
	UnitWeeks  EffortUnit = 'w'
	UnitMonths EffortUnit = 'm'
)

// Effort is a parsed effort estimate: a value plus a unit.
type Effort struct {
	Value float64
	Unit  EffortUnit
}

// ParseEffort parses strings like "1h", "2d", "3w", "0.5h". The unit is a
// single trailing letter: h=hours, d=8-hour day, w=40-hour week,
// m=160-hour month.
func ParseEffort(s string) (Effort, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Effort{}, fmt.Errorf("invalid effort %q: expected value followed by h/d/w/m", s)
	}

	value, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return Effort{}, fmt.Errorf("invalid effort value %q", s[:len(s)-1])
	}

	unit := EffortUnit(s[len(s)-1])
	switch unit {
	case UnitHours, UnitDays, UnitWeeks, UnitMonths:
		return Effort{Value: value, Unit: unit}, nil
	default:
		return Effort{}, fmt.Errorf("invalid effort unit %q: use h/d/w/m", string(unit))
	}
}

// Hours normalizes the effort to hours for storage.
func (e Effort) Hours() float64 {
	switch e.Unit {
	case UnitDays:
		return e.Value * hoursPerDay
	case UnitWeeks:
		return e.Value * hoursPerWeek
	case UnitMonths:
		return e.Value * hoursPerMonth
	default:
		return e.Value
	}
}

// FormatHours renders stored hours back to the largest fitting unit,
// one decimal place.
func FormatHours(hours float64) string {
	switch {
	case hours < hoursPerDay:
		return fmt.Sprintf("%.1fh", hours)
	case hours < hoursPerWeek:
		return fmt.Sprintf("%.1fd", hours/hoursPerDay)
	case hours < hoursPerMonth:
		return fmt.Sprintf("%.1fw", hours/hoursPerWeek)
	default:
		return fmt.Sprintf("%.1fm", hours/hoursPerMonth)
	}
}

// FormatWorkSeconds renders accumulated seconds as a descending
// "{days}d {hours}h {minutes}m" breakdown using 8-hour workdays.
// Below one minute it renders "{n}s". Zero-valued leading units are
// omitted; the trailing minute unit is always shown.
func FormatWorkSeconds(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	hours := minutes / 60
	days := hours / hoursPerDay

	remHours := hours % hoursPerDay
	remMinutes := minutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if remHours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", remHours))
	}
	if remMinutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", remMinutes))
	}
	return strings.Join(parts, " ")
}
