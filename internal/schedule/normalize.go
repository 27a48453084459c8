package schedule

import (
	"strings"

	"atelier-schedule-bot/internal/models"
)

// Slot categories routed to the card's display lines.
const (
	SlotFirst    = "first"
	SlotSecond   = "second"
	SlotBeginner = "beginner"
)

var (
	beginnerTokens = []string{"beginner", "初回", "はじめて"}
	secondTokens   = []string{"second", "2部", "第2", "二部"}
	firstTokens    = []string{"first", "1部", "第1", "一部"}
)

// NormalizeSlot classifies a slot hint plus title into one of the slot
// categories. The explicit hint wins over title text, and beginner always
// wins over the numbered slots even when several markers are present.
func NormalizeSlot(slot, title string) string {
	value := strings.ToLower(strings.TrimSpace(slot))
	if containsAny(value, beginnerTokens) {
		return SlotBeginner
	}
	if containsAny(value, secondTokens) {
		return SlotSecond
	}
	if containsAny(value, firstTokens) {
		return SlotFirst
	}

	combined := strings.TrimSpace(title)
	if containsAny(combined, beginnerTokens[1:]) {
		return SlotBeginner
	}
	if containsAny(combined, secondTokens[1:]) {
		return SlotSecond
	}
	if containsAny(combined, firstTokens[1:]) {
		return SlotFirst
	}
	return ""
}

// IsNightEntry reports whether the entry is an evening session. Any single
// signal suffices: start at or after 17:00, end at or after 20:00, or a
// night marker in the slot hint or title.
func IsNightEntry(entry models.ScheduleEntry) bool {
	if entry.Start != nil && entry.Start.Hour() >= 17 {
		return true
	}
	if entry.End != nil && entry.End.Hour() >= 20 {
		return true
	}
	slotText := strings.ToLower(strings.TrimSpace(entry.Slot))
	if strings.Contains(slotText, "night") || strings.Contains(slotText, "夜") {
		return true
	}
	return strings.Contains(strings.TrimSpace(entry.Title), "夜")
}

func containsAny(value string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}
