package schedule

import (
	"testing"
	"time"

	"atelier-schedule-bot/internal/models"
)

func TestNormalizeSlot(t *testing.T) {
	tests := []struct {
		name  string
		slot  string
		title string
		want  string
	}{
		{"explicit first", "first", "", SlotFirst},
		{"explicit second uppercase", "SECOND", "", SlotSecond},
		{"explicit beginner", "beginner", "", SlotBeginner},
		{"japanese first part", "1部", "", SlotFirst},
		{"japanese second part", "第2", "", SlotSecond},
		{"japanese beginner", "初回", "", SlotBeginner},
		{"beginner wins over first in hint", "1部 はじめて", "", SlotBeginner},
		{"second wins over first in hint", "1部 2部", "", SlotSecond},
		{"title fallback first", "", "木彫り教室 一部", SlotFirst},
		{"title fallback second", "", "二部レッスン", SlotSecond},
		{"title beginner beats title first", "", "はじめての方 1部", SlotBeginner},
		{"hint beats title", "first", "はじめての方", SlotFirst},
		{"ascii tokens ignored in title", "", "first lesson", ""},
		{"no markers", "", "木彫り教室", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSlot(tt.slot, tt.title); got != tt.want {
				t.Errorf("NormalizeSlot(%q, %q) = %q, want %q", tt.slot, tt.title, got, tt.want)
			}
		})
	}
}

func TestIsNightEntry(t *testing.T) {
	at := func(hour, minute int) *time.Time {
		v := time.Date(2026, 3, 14, hour, minute, 0, 0, JST)
		return &v
	}

	tests := []struct {
		name  string
		entry models.ScheduleEntry
		want  bool
	}{
		{"late start", models.ScheduleEntry{Start: at(17, 30)}, true},
		{"afternoon start", models.ScheduleEntry{Start: at(13, 0)}, false},
		{"late end", models.ScheduleEntry{Start: at(16, 0), End: at(20, 0)}, true},
		{"early end", models.ScheduleEntry{Start: at(10, 0), End: at(12, 0)}, false},
		{"night marker in slot", models.ScheduleEntry{Slot: "night"}, true},
		{"kanji marker in slot", models.ScheduleEntry{Slot: "夜の部"}, true},
		{"kanji marker in title", models.ScheduleEntry{Title: "夜クラス"}, true},
		{"no signals", models.ScheduleEntry{Title: "木彫り教室"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNightEntry(tt.entry); got != tt.want {
				t.Errorf("IsNightEntry() = %v, want %v", got, tt.want)
			}
		})
	}
}
