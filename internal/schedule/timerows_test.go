package schedule

import (
	"reflect"
	"testing"

	"atelier-schedule-bot/internal/models"
)

func TestBuildFixedTimeRows(t *testing.T) {
	tests := []struct {
		name         string
		card         models.DayCard
		wantLines    [2]string
		wantBeginner string
	}{
		{
			name:      "no times at all",
			card:      models.DayCard{},
			wantLines: [2]string{models.TimeUndecided, ""},
		},
		{
			name:      "morning then afternoon",
			card:      models.DayCard{FirstTime: "10:00~12:00", SecondTime: "13:00~16:00"},
			wantLines: [2]string{"10:00~12:00", "13:00~16:00"},
		},
		{
			name:      "afternoon only",
			card:      models.DayCard{FirstTime: "13:00~16:00"},
			wantLines: [2]string{"13:00~16:00", ""},
		},
		{
			name:      "night value claims line 2",
			card:      models.DayCard{FirstTime: "12:00~16:00", SecondTime: "17:30~20:00"},
			wantLines: [2]string{"12:00~16:00", "17:30~20:00"},
		},
		{
			name:      "lone night value stays on line 2",
			card:      models.DayCard{FirstTime: "17:30~20:00"},
			wantLines: [2]string{"", "17:30~20:00"},
		},
		{
			name:      "merged field splits across lines",
			card:      models.DayCard{FirstTime: "10:00~12:00 / 13:00~16:00"},
			wantLines: [2]string{"10:00~12:00", "13:00~16:00"},
		},
		{
			name:      "unknown clock text used last",
			card:      models.DayCard{FirstTime: models.TimeUndecided, SecondTime: "13:00~16:00"},
			wantLines: [2]string{"13:00~16:00", models.TimeUndecided},
		},
		{
			name:         "beginner time passes through",
			card:         models.DayCard{FirstTime: "13:00~16:00", BeginnerTime: "10:00~12:00"},
			wantLines:    [2]string{"13:00~16:00", ""},
			wantBeginner: "10:00~12:00",
		},
		{
			name:         "beginner only",
			card:         models.DayCard{BeginnerTime: "10:00~12:00"},
			wantLines:    [2]string{"", ""},
			wantBeginner: "10:00~12:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, beginner := BuildFixedTimeRows(tt.card)
			if lines != tt.wantLines {
				t.Errorf("lines = %q, want %q", lines, tt.wantLines)
			}
			if beginner != tt.wantBeginner {
				t.Errorf("beginner = %q, want %q", beginner, tt.wantBeginner)
			}
		})
	}
}

func TestResolveNightTimeLineIndexes(t *testing.T) {
	tests := []struct {
		name  string
		card  models.DayCard
		lines [2]string
		want  map[int]bool
	}{
		{
			name:  "no night flag",
			card:  models.DayCard{},
			lines: [2]string{"13:00~16:00", "17:30~20:00"},
			want:  nil,
		},
		{
			name:  "night on line 2 badges line 1",
			card:  models.DayCard{HasNight: true},
			lines: [2]string{"12:00~16:00", "17:30~20:00"},
			want:  map[int]bool{0: true},
		},
		{
			name:  "night on line 1",
			card:  models.DayCard{HasNight: true},
			lines: [2]string{"17:30~20:00", ""},
			want:  map[int]bool{0: true},
		},
		{
			name:  "flag without night text defaults to line 1",
			card:  models.DayCard{HasNight: true},
			lines: [2]string{"13:00~16:00", ""},
			want:  map[int]bool{0: true},
		},
		{
			name:  "flag with empty lines",
			card:  models.DayCard{HasNight: true},
			lines: [2]string{"", ""},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveNightTimeLineIndexes(tt.card, tt.lines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveNightTimeLineIndexes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNightTimeText(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"17:30~20:00", true},
		{"16:59~19:00", false},
		{" 9:00~12:00", false},
		{models.TimeUndecided, false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsNightTimeText(tt.value); got != tt.want {
			t.Errorf("IsNightTimeText(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
