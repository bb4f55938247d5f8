package schedule

import (
	"iter"
	"time"
)

// DatesBetween yields each calendar date from start through end (inclusive)
// whose weekday ordinal is contained in weekdays. The sequence is finite and
// can be ranged over multiple times. An empty weekday set yields nothing, and
// so does start > end.
func DatesBetween(start, end time.Time, weekdays []int) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if len(weekdays) == 0 {
			return
		}
		set := make(map[int]bool, len(weekdays))
		for _, d := range weekdays {
			set[d] = true
		}

		last := truncateToDay(end)
		for d := truncateToDay(start); !d.After(last); d = d.AddDate(0, 0, 1) {
			if !set[WeekdayOrdinal(d)] {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
