package models

import (
	"sort"
	"time"
)

// Sentinel labels shared by grouping and rendering.
const (
	ClassroomUndecided = "未定"
	VenueMultiple      = "複数会場"
	TimeUndecided      = "時間未定"
)

// ScheduleEntry is one normalized schedule item for a single day.
// Entries are value objects: built once by a source, never mutated.
type ScheduleEntry struct {
	Day       time.Time // date only, midnight in source timezone
	Title     string
	Classroom string
	Venue     string
	Start     *time.Time
	End       *time.Time
	Slot      string // free-text slot hint ("first", "1部", ...)
}

// SortEntries orders entries by day, then start time, then title.
// Entries without a start time sort after timed ones on the same day.
func SortEntries(entries []ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		ah, am := 99, 99
		if a.Start != nil {
			ah, am = a.Start.Hour(), a.Start.Minute()
		}
		bh, bm := 99, 99
		if b.Start != nil {
			bh, bm = b.Start.Hour(), b.Start.Minute()
		}
		if ah != bh {
			return ah < bh
		}
		if am != bm {
			return am < bm
		}
		return a.Title < b.Title
	})
}
