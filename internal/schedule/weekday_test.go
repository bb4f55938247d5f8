package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOrdinal(t *testing.T) {
	// 2024-06-03 is a Monday.
	for i := 0; i < 7; i++ {
		d := time.Date(2024, 6, 3+i, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, i, WeekdayOrdinal(d), d.Weekday().String())
	}
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Monday", WeekdayName(0))
	assert.Equal(t, "Sunday", WeekdayName(6))
	assert.Equal(t, "", WeekdayName(-1))
	assert.Equal(t, "", WeekdayName(7))
}

func TestNormalizeWeekdays(t *testing.T) {
	got, err := NormalizeWeekdays([]int{6, 2, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 6}, got)

	got, err = NormalizeWeekdays(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeWeekdays([]int{0, 7})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = NormalizeWeekdays([]int{-1})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, m)

	m, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("not a time")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(9*60))
	assert.Equal(t, "17:45", FormatClock(17*60+45))
}

func TestAt(t *testing.T) {
	d := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	got := At(d, 9*60+30)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC), got)
}
