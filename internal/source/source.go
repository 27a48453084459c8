// Package source provides schedule ingestion adapters. Each adapter turns
// loosely shaped upstream records into normalized ScheduleEntry values for
// one target month.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"atelier-schedule-bot/internal/models"
)

// EntrySource fetches the normalized entries for a month. When
// includeAdjacent is set, the range widens to the calendar's visible span
// so adjacent-month padding days carry their real entries.
type EntrySource interface {
	FetchMonthEntries(ctx context.Context, year, month int, includeAdjacent bool) ([]models.ScheduleEntry, error)
}

// fieldAliases is the ordered list of key names accepted for one logical
// field. Earlier names win.
type fieldAliases []string

var (
	classroomAliases = fieldAliases{"classroom", "classroom_name", "studio", "教室"}
	venueAliases     = fieldAliases{"venue", "venue_name", "会場", "location"}
	titleAliases     = fieldAliases{"title", "name", "label", "event_name", "lesson_name", "lesson", "type"}
	slotAliases      = fieldAliases{"slot", "time_slot", "part", "部", "時間帯"}
	lessonIDAliases  = fieldAliases{"lesson_id", "lessonId"}

	dateAliases = fieldAliases{"date", "day", "ymd", "date_ymd", "日付", "start", "start_at", "starts_at", "startAt"}

	// End keys probed on records that carry their own date.
	endDateAliases = fieldAliases{"end", "end_at", "ends_at", "endAt"}

	startAliases = fieldAliases{
		"start", "start_at", "starts_at", "startAt",
		"time", "start_time",
		"first_start", "firstStart",
		"second_start", "secondStart",
		"beginner_start", "beginnerStart",
		"1部開始", "2部開始", "初回者開始",
	}
	endAliases = fieldAliases{
		"end", "end_at", "ends_at", "endAt",
		"end_time",
		"first_end", "firstEnd",
		"second_end", "secondEnd",
		"1部終了", "2部終了",
	}
)

// pickText returns the first alias whose value renders to non-empty text.
func pickText(record map[string]any, aliases fieldAliases) string {
	for _, key := range aliases {
		if text := toText(record[key]); text != "" {
			return text
		}
	}
	return ""
}

// toText flattens a free-form JSON value to display text. Lists join with
// " / "; objects are probed for conventional display-name keys.
func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case []any:
		var pieces []string
		for _, item := range v {
			if text := toText(item); text != "" {
				pieces = append(pieces, text)
			}
		}
		return strings.Join(pieces, " / ")
	case map[string]any:
		for _, key := range []string{"name", "title", "label", "value", "display_name", "displayName"} {
			if text := toText(v[key]); text != "" {
				return text
			}
		}
		return ""
	default:
		return ""
	}
}

// fallbackTitle supplies a title when the record carries none.
func fallbackTitle(record map[string]any) string {
	if participants, ok := record["participants"].([]any); ok && len(participants) > 0 {
		return fmt.Sprintf("%d名", len(participants))
	}
	if pickText(record, lessonIDAliases) != "" {
		return "レッスン"
	}
	return "予定"
}
