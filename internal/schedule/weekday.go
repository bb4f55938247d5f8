package schedule

import (
	"sort"
	"time"
)

// Weekday ordinals run Monday=0 through Sunday=6.
var weekdayNames = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekdayName returns the name for a weekday ordinal, or "" if out of range.
func WeekdayName(ordinal int) string {
	if ordinal < 0 || ordinal > 6 {
		return ""
	}
	return weekdayNames[ordinal]
}

// WeekdayOrdinal maps a time to its Monday-based weekday ordinal.
// Go's time.Weekday starts at Sunday=0, so shift by one day.
func WeekdayOrdinal(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// NormalizeWeekdays validates, deduplicates and sorts a set of weekday
// ordinals. An empty input is allowed and stays empty: a block with no days
// selected applies to no dates.
func NormalizeWeekdays(days []int) ([]int, error) {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			return nil, ErrInvalidWeekday
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out, nil
}
