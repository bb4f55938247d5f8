package schedule

import (
	"fmt"
	"time"
)

// MinutesPerDay is the number of wall-clock minutes in a day.
const MinutesPerDay = 24 * 60

const clockLayout = "15:04"

// ParseClock parses a wall-clock "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// At combines a calendar date with a minutes-since-midnight offset.
// The result keeps the date's location.
func At(date time.Time, minute int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minute/60, minute%60, 0, 0, date.Location())
}
