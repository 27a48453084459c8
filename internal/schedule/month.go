package schedule

import (
	"fmt"
	"time"
)

// JST is the default timezone for schedule targets.
var JST = time.FixedZone("JST", 9*60*60)

// ResolveTargetYearMonth resolves the year/month a publish run targets.
// An explicit year/month pair wins; otherwise target selects the current
// or the next month relative to now.
func ResolveTargetYearMonth(now time.Time, target string, year, month int) (int, int, error) {
	if (year == 0) != (month == 0) {
		return 0, 0, fmt.Errorf("year and month must be provided together")
	}
	if year != 0 && month != 0 {
		if month < 1 || month > 12 {
			return 0, 0, fmt.Errorf("month must be between 1 and 12")
		}
		return year, month, nil
	}

	base := now.In(JST)
	switch target {
	case "current":
		return base.Year(), int(base.Month()), nil
	case "next":
		// Day 28 plus four days always lands in the following month.
		next := time.Date(base.Year(), base.Month(), 28, 0, 0, 0, 0, JST).AddDate(0, 0, 4)
		return next.Year(), int(next.Month()), nil
	default:
		return 0, 0, fmt.Errorf("target must be %q or %q", "current", "next")
	}
}

// MonthMatrix returns the month's Monday-first week rows. Leading and
// trailing cells hold the real dates of the adjacent months so the grid is
// always a full 7-column rectangle.
func MonthMatrix(year, month int, loc *time.Location) [][]time.Time {
	if loc == nil {
		loc = JST
	}
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	start := firstDay.AddDate(0, 0, -mondayIndex(firstDay.Weekday()))
	lastDay := firstDay.AddDate(0, 1, -1)

	var weeks [][]time.Time
	for day := start; !day.After(lastDay); day = day.AddDate(0, 0, 7) {
		week := make([]time.Time, 7)
		for i := 0; i < 7; i++ {
			week[i] = day.AddDate(0, 0, i)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// VisibleDateRange returns the first and last date shown by the month's
// calendar grid, including adjacent-month padding days.
func VisibleDateRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	weeks := MonthMatrix(year, month, loc)
	firstWeek := weeks[0]
	lastWeek := weeks[len(weeks)-1]
	return firstWeek[0], lastWeek[len(lastWeek)-1]
}

// MonthDateRange returns the first and last date of the month itself.
func MonthDateRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = JST
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return first, first.AddDate(0, 1, -1)
}

// mondayIndex maps time.Weekday to a Monday-first column index.
func mondayIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
