package schedule

import (
	"fmt"
	"sort"
	"strings"

	"atelier-schedule-bot/internal/models"
)

// BuildMonthlyCaption builds the caption for the schedule post. A template
// may reference {year}, {month} and {classrooms}.
func BuildMonthlyCaption(year, month int, entries []models.ScheduleEntry, defaultTags, template string) string {
	seen := make(map[string]bool)
	var classrooms []string
	for _, entry := range entries {
		if entry.Classroom != "" && !seen[entry.Classroom] {
			seen[entry.Classroom] = true
			classrooms = append(classrooms, entry.Classroom)
		}
	}
	sort.Strings(classrooms)

	classroomText := "各教室"
	if len(classrooms) > 0 {
		short := make([]string, len(classrooms))
		for i, value := range classrooms {
			short[i] = ShortClassroomName(value)
		}
		classroomText = strings.Join(short, " / ")
	}

	var base string
	if template != "" {
		replacer := strings.NewReplacer(
			"{year}", fmt.Sprintf("%d", year),
			"{month}", fmt.Sprintf("%d", month),
			"{classrooms}", classroomText,
		)
		base = replacer.Replace(template)
	} else {
		base = fmt.Sprintf("%d年%d月の教室日程です。\n最新の空き状況や詳細は予約ページをご確認ください。", year, month)
	}

	if tags := normalizeHashtags(defaultTags); tags != "" {
		return base + "\n\n" + tags
	}
	return base
}

// ShortClassroomName drops the "教室" suffix used on cards and captions.
func ShortClassroomName(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "教室", ""))
}

// normalizeHashtags splits on spaces (full-width included) and guarantees a
// leading '#' per tag.
func normalizeHashtags(raw string) string {
	var words []string
	for _, token := range strings.Fields(strings.ReplaceAll(raw, "　", " ")) {
		value := strings.TrimSpace(token)
		if value == "" {
			continue
		}
		if !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		words = append(words, value)
	}
	return strings.Join(words, " ")
}
