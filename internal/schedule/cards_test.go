package schedule

import (
	"reflect"
	"testing"
	"time"

	"atelier-schedule-bot/internal/models"
)

func entryAt(classroom, venue, title, slot string, startHour, startMinute int) models.ScheduleEntry {
	start := time.Date(2026, 3, 14, startHour, startMinute, 0, 0, JST)
	end := start.Add(3 * time.Hour)
	return models.ScheduleEntry{
		Day:       time.Date(2026, 3, 14, 0, 0, 0, 0, JST),
		Title:     title,
		Classroom: classroom,
		Venue:     venue,
		Slot:      slot,
		Start:     &start,
		End:       &end,
	}
}

func TestFormatTimeRange(t *testing.T) {
	at := func(hour, minute int) *time.Time {
		v := time.Date(2026, 3, 14, hour, minute, 0, 0, JST)
		return &v
	}

	tests := []struct {
		name  string
		entry models.ScheduleEntry
		want  string
	}{
		{"full range", models.ScheduleEntry{Start: at(13, 0), End: at(16, 30)}, "13:00~16:30"},
		{"single digit hour is space padded", models.ScheduleEntry{Start: at(9, 5), End: at(12, 0)}, " 9:05~12:00"},
		{"start only", models.ScheduleEntry{Start: at(10, 0)}, "10:00~"},
		{"end only", models.ScheduleEntry{End: at(16, 0)}, "~16:00"},
		{"no bounds", models.ScheduleEntry{}, models.TimeUndecided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeRange(tt.entry); got != tt.want {
				t.Errorf("FormatTimeRange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTimeValues(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"", nil},
		{"  ", nil},
		{"13:00~16:00", []string{"13:00~16:00"}},
		{"10:00~12:00 / 13:00~16:00", []string{"10:00~12:00", "13:00~16:00"}},
		{" 9:00~ / ", []string{" 9:00~"}},
	}

	for _, tt := range tests {
		if got := ExpandTimeValues(tt.value); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExpandTimeValues(%q) = %#v, want %#v", tt.value, got, tt.want)
		}
	}
}

func TestTimeTextToSortKey(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"13:00~16:00", 13*60 + 0},
		{" 9:30~12:00", 9*60 + 30},
		{"10:00-12:00", 10 * 60},
		{"10:00 - 12:00", 10 * 60},
		{models.TimeUndecided, 10000},
		{"", 10000},
		{"99:00", 10000},
		// Segments with trailing or embedded non-digits never parse.
		{"10:00)", 10000},
		{"1o:30", 10000},
	}

	for _, tt := range tests {
		if got := timeTextToSortKey(tt.value); got != tt.want {
			t.Errorf("timeTextToSortKey(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestBuildDayCardsGroupsByClassroom(t *testing.T) {
	entries := []models.ScheduleEntry{
		entryAt("東京教室", "浅草橋", "木彫り教室 1部", "first", 13, 0),
		entryAt("東京教室", "浅草橋", "はじめての方", "beginner", 10, 0),
		entryAt("つくば教室", "", "木彫り教室", "", 10, 30),
	}

	cards := BuildDayCards(entries)
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}

	// つくば starts earlier so it sorts first.
	if cards[0].Classroom != "つくば教室" {
		t.Errorf("cards[0].Classroom = %q, want つくば教室", cards[0].Classroom)
	}
	if cards[0].FirstTime != "10:30~13:30" {
		t.Errorf("backfilled FirstTime = %q, want 10:30~13:30", cards[0].FirstTime)
	}

	tokyo := cards[1]
	if tokyo.FirstTime != "13:00~16:00" {
		t.Errorf("tokyo.FirstTime = %q, want 13:00~16:00", tokyo.FirstTime)
	}
	if tokyo.BeginnerTime != "10:00~13:00" {
		t.Errorf("tokyo.BeginnerTime = %q, want 10:00~13:00", tokyo.BeginnerTime)
	}
	if tokyo.Venue != "浅草橋" {
		t.Errorf("tokyo.Venue = %q, want 浅草橋", tokyo.Venue)
	}
}

func TestBuildDayCardsMergesDuplicateSlotTimes(t *testing.T) {
	entries := []models.ScheduleEntry{
		entryAt("東京教室", "浅草橋", "1部", "first", 13, 0),
		entryAt("東京教室", "浅草橋", "1部", "first", 13, 0),
		entryAt("東京教室", "浅草橋", "1部", "first", 14, 0),
	}

	cards := BuildDayCards(entries)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].FirstTime != "13:00~16:00 / 14:00~17:00" {
		t.Errorf("FirstTime = %q, want duplicate suppressed merge", cards[0].FirstTime)
	}
}

func TestBuildDayCardsConflictingVenues(t *testing.T) {
	entries := []models.ScheduleEntry{
		entryAt("東京教室", "浅草橋", "1部", "first", 10, 0),
		entryAt("東京教室", "東池袋", "2部", "second", 14, 0),
	}

	cards := BuildDayCards(entries)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Venue != models.VenueMultiple {
		t.Errorf("Venue = %q, want %q", cards[0].Venue, models.VenueMultiple)
	}
}

func TestBuildDayCardsNightFlag(t *testing.T) {
	entries := []models.ScheduleEntry{
		entryAt("沼津教室", "", "1部", "first", 10, 0),
		entryAt("沼津教室", "", "夜の部", "", 17, 30),
	}

	cards := BuildDayCards(entries)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if !cards[0].HasNight {
		t.Error("HasNight = false, want true")
	}
}

func TestBuildDayCardsOtherTimesBackfill(t *testing.T) {
	entries := []models.ScheduleEntry{
		entryAt("東京教室", "", "木彫り", "", 10, 0),
		entryAt("東京教室", "", "木彫り", "", 14, 0),
		entryAt("東京教室", "", "木彫り", "", 17, 30),
	}

	cards := BuildDayCards(entries)
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	card := cards[0]
	if card.FirstTime != "10:00~13:00" {
		t.Errorf("FirstTime = %q", card.FirstTime)
	}
	if card.SecondTime != "14:00~17:00" {
		t.Errorf("SecondTime = %q", card.SecondTime)
	}
	if card.BeginnerTime != "17:30~20:30" {
		t.Errorf("BeginnerTime = %q", card.BeginnerTime)
	}
}

func TestBuildDayCardsEmptyInput(t *testing.T) {
	if cards := BuildDayCards(nil); len(cards) != 0 {
		t.Errorf("got %d cards, want 0", len(cards))
	}
}
