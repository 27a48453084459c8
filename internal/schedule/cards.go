package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"atelier-schedule-bot/internal/models"
)

// BuildDayCards groups one day's entries into per-classroom cards.
// Grouping preserves first-seen order of the time-sorted entries; the final
// slice is ordered by earliest time, then classroom name.
func BuildDayCards(entries []models.ScheduleEntry) []models.DayCard {
	sorted := make([]models.ScheduleEntry, len(entries))
	copy(sorted, entries)
	models.SortEntries(sorted)

	byKey := make(map[string]*models.DayCard)
	var order []string

	for _, entry := range sorted {
		classroom := strings.TrimSpace(entry.Classroom)
		venue := strings.TrimSpace(entry.Venue)
		key := classroom
		if key == "" {
			key = models.ClassroomUndecided
		}

		card, ok := byKey[key]
		if !ok {
			card = &models.DayCard{Classroom: classroom, Venue: venue}
			byKey[key] = card
			order = append(order, key)
		} else if venue != "" {
			if card.Venue == "" {
				card.Venue = venue
			} else if card.Venue != venue && card.Venue != models.VenueMultiple {
				card.Venue = models.VenueMultiple
			}
		}

		timeText := FormatTimeRange(entry)
		switch NormalizeSlot(entry.Slot, entry.Title) {
		case SlotFirst:
			card.FirstTime = mergeTimeText(card.FirstTime, timeText)
		case SlotSecond:
			card.SecondTime = mergeTimeText(card.SecondTime, timeText)
		case SlotBeginner:
			card.BeginnerTime = mergeTimeText(card.BeginnerTime, timeText)
		default:
			if timeText != "" && !containsString(card.OtherTimes, timeText) {
				card.OtherTimes = append(card.OtherTimes, timeText)
			}
		}

		if IsNightEntry(entry) {
			card.HasNight = true
		}
	}

	cards := make([]models.DayCard, 0, len(order))
	for _, key := range order {
		card := byKey[key]
		for _, timeText := range card.OtherTimes {
			switch {
			case card.FirstTime == "":
				card.FirstTime = timeText
			case card.SecondTime == "" && timeText != card.FirstTime:
				card.SecondTime = timeText
			case card.BeginnerTime == "" && timeText != card.FirstTime && timeText != card.SecondTime:
				card.BeginnerTime = timeText
			}
		}
		cards = append(cards, *card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		ak := timeTextToSortKey(firstNonEmpty(a.FirstTime, a.SecondTime, a.BeginnerTime))
		bk := timeTextToSortKey(firstNonEmpty(b.FirstTime, b.SecondTime, b.BeginnerTime))
		if ak != bk {
			return ak < bk
		}
		return a.Classroom < b.Classroom
	})
	return cards
}

// FormatTimeRange renders an entry's time bounds as "HH:MM~HH:MM".
// One-sided ranges keep the tilde; no bounds at all yields the sentinel.
// Single-digit hours are space padded so stacked card lines align.
func FormatTimeRange(entry models.ScheduleEntry) string {
	start := formatClock(entry.Start)
	end := formatClock(entry.End)
	switch {
	case start != "" && end != "":
		return start + "~" + end
	case start != "":
		return start + "~"
	case end != "":
		return "~" + end
	default:
		return models.TimeUndecided
	}
}

func formatClock(value *time.Time) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%2d:%02d", value.Hour(), value.Minute())
}

// mergeTimeText appends with " / ", suppressing exact duplicates.
func mergeTimeText(existing, newText string) string {
	if newText == "" {
		return existing
	}
	if existing == "" {
		return newText
	}
	normalized := strings.TrimRight(newText, " ")
	for _, value := range ExpandTimeValues(existing) {
		if value == normalized {
			return existing
		}
	}
	return existing + " / " + newText
}

// ExpandTimeValues splits a " / "-joined time field into its values.
func ExpandTimeValues(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, " / ") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, strings.TrimRight(item, " "))
	}
	return out
}

// timeTextToSortKey extracts the first HH:MM as minutes since midnight.
// Texts without a parseable clock sort last.
func timeTextToSortKey(timeText string) int {
	value := strings.TrimSpace(timeText)
	if value == "" {
		return 10000
	}
	value = strings.ReplaceAll(value, " - ", " ")
	value = strings.ReplaceAll(value, "-", " ")
	value = strings.ReplaceAll(value, "~", " ")
	for _, token := range strings.Fields(value) {
		hour, minute, ok := parseClockToken(token)
		if ok {
			return hour*60 + minute
		}
	}
	return 10000
}

func parseClockToken(token string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(token, ":")
	if !found {
		return 0, 0, false
	}
	hour, ok = parseClockInt(h)
	if !ok || hour > 23 {
		return 0, 0, false
	}
	minute, ok = parseClockInt(m)
	if !ok || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// parseClockInt parses a whole clock segment. Any non-digit rejects the
// segment; partial digit prefixes never count.
func parseClockInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	value := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		value = value*10 + int(r-'0')
		if value > 9999 {
			return 0, false
		}
	}
	return value, true
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
