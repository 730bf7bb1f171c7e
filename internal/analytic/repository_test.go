package analytic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRangeDay(t *testing.T) {
	start, end := dateRange("day")
	now := time.Now().UTC()

	assert.Equal(t, now.Year(), start.Year())
	assert.Equal(t, now.YearDay(), start.YearDay())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.False(t, end.Before(start))
}

func TestDateRangeWeekStartsMonday(t *testing.T) {
	start, end := dateRange("week")

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 0, start.Hour())
	assert.False(t, end.Before(start))
	assert.LessOrEqual(t, end.Sub(start), 7*24*time.Hour)
}

func TestDateRangeMonthAndYear(t *testing.T) {
	now := time.Now().UTC()

	start, _ := dateRange("month")
	assert.Equal(t, now.Month(), start.Month())
	assert.Equal(t, 1, start.Day())

	start, _ = dateRange("year")
	assert.Equal(t, now.Year(), start.Year())
	assert.Equal(t, time.January, start.Month())
	assert.Equal(t, 1, start.Day())
}

func TestDateRangeUnknownPeriodDefaultsToMonth(t *testing.T) {
	monthStart, _ := dateRange("month")
	unknownStart, _ := dateRange("quarter")

	assert.Equal(t, monthStart, unknownStart)
}
