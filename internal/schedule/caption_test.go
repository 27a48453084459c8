package schedule

import (
	"strings"
	"testing"

	"atelier-schedule-bot/internal/models"
)

func TestBuildMonthlyCaption(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Classroom: "東京教室"},
		{Classroom: "つくば教室"},
		{Classroom: "東京教室"},
	}

	t.Run("default caption", func(t *testing.T) {
		got := BuildMonthlyCaption(2026, 4, entries, "", "")
		if !strings.Contains(got, "2026年4月") {
			t.Errorf("caption missing year/month: %q", got)
		}
	})

	t.Run("template substitution", func(t *testing.T) {
		got := BuildMonthlyCaption(2026, 4, entries, "", "{year}/{month} {classrooms}")
		if got != "2026/4 つくば / 東京" {
			t.Errorf("caption = %q", got)
		}
	})

	t.Run("no classrooms falls back", func(t *testing.T) {
		got := BuildMonthlyCaption(2026, 4, nil, "", "{classrooms}")
		if got != "各教室" {
			t.Errorf("caption = %q", got)
		}
	})

	t.Run("hashtags appended and normalized", func(t *testing.T) {
		got := BuildMonthlyCaption(2026, 4, nil, "木彫り #教室", "base")
		if got != "base\n\n#木彫り #教室" {
			t.Errorf("caption = %q", got)
		}
	})
}

func TestShortClassroomName(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"東京教室", "東京"},
		{"つくば教室", "つくば"},
		{"沼津", "沼津"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortClassroomName(tt.value); got != tt.want {
			t.Errorf("ShortClassroomName(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
