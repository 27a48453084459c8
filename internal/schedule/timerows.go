package schedule

import (
	"strings"

	"atelier-schedule-bot/internal/models"
)

// BuildFixedTimeRows turns a card's merged time fields into exactly two
// display lines plus the beginner time. Either line may be empty; a card
// with no times at all gets the sentinel on line 1.
func BuildFixedTimeRows(card models.DayCard) (lines [2]string, beginnerTime string) {
	var values []string
	values = append(values, ExpandTimeValues(card.FirstTime)...)
	values = append(values, ExpandTimeValues(card.SecondTime)...)
	beginnerValues := ExpandTimeValues(card.BeginnerTime)

	if len(values) == 0 && len(beginnerValues) == 0 {
		return [2]string{models.TimeUndecided, ""}, ""
	}

	var morning, afternoon, unknown, nightValues, nonNightValues []string
	for _, value := range values {
		if IsNightTimeText(value) {
			nightValues = append(nightValues, value)
		} else {
			nonNightValues = append(nonNightValues, value)
		}
		hour, ok := extractStartHour(value)
		switch {
		case !ok:
			unknown = append(unknown, value)
		case hour < 12:
			morning = append(morning, value)
		default:
			afternoon = append(afternoon, value)
		}
	}

	nonNightMorning := intersect(morning, nonNightValues)
	nonNightAfternoon := intersect(afternoon, nonNightValues)
	nonNightUnknown := intersect(unknown, nonNightValues)

	line1 := firstNonEmpty(
		first(nonNightMorning),
		first(nonNightAfternoon),
		first(nonNightUnknown),
		first(nonNightValues),
	)

	line2 := first(nightValues)
	if line2 == "" {
		for _, candidate := range concat(nonNightAfternoon, nonNightUnknown, nonNightValues) {
			if candidate != "" && candidate != line1 {
				line2 = candidate
				break
			}
		}
	}

	// A lone night value never occupies slot 1; it stays on line 2 with
	// line 1 cleared so the badge has a companion row.
	if line1 == "" && line2 != "" && IsNightTimeText(line2) {
		line1 = ""
	}

	return [2]string{line1, line2}, first(beginnerValues)
}

// ResolveNightTimeLineIndexes decides which display lines carry the night
// badge. When line 2 shows the night hours but line 1 is present, the badge
// stays on line 1 to keep it near the top of the card.
func ResolveNightTimeLineIndexes(card models.DayCard, lines [2]string) map[int]bool {
	if !card.HasNight {
		return nil
	}

	if lines[1] != "" && IsNightTimeText(lines[1]) {
		return map[int]bool{0: true}
	}

	explicit := make(map[int]bool)
	for index, value := range lines {
		if value != "" && IsNightTimeText(value) {
			explicit[index] = true
		}
	}
	if len(explicit) > 0 {
		if explicit[0] {
			return map[int]bool{0: true}
		}
		return explicit
	}

	if lines[1] != "" || lines[0] != "" {
		return map[int]bool{0: true}
	}
	return nil
}

// IsNightTimeText reports whether the leading clock in a formatted time
// text falls at or after 17:00.
func IsNightTimeText(value string) bool {
	hour, ok := extractStartHour(value)
	return ok && hour >= 17
}

func extractStartHour(value string) (int, bool) {
	text := strings.ReplaceAll(value, "~", " ")
	for _, token := range strings.Fields(text) {
		h, _, found := strings.Cut(token, ":")
		if !found {
			continue
		}
		hour, ok := parseClockInt(h)
		if ok && hour <= 23 {
			return hour, true
		}
	}
	return 0, false
}

func intersect(values, allowed []string) []string {
	var out []string
	for _, value := range values {
		if containsString(allowed, value) {
			out = append(out, value)
		}
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func concat(slices ...[]string) []string {
	var out []string
	for _, s := range slices {
		out = append(out, s...)
	}
	return out
}
