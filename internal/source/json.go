package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/schedule"
)

// JSONSource reads a free-form schedule document from a URL or local file.
type JSONSource struct {
	url      string
	path     string
	location *time.Location
	client   *http.Client
	log      *zap.Logger
}

func NewJSONSource(url, path, timezone string, log *zap.Logger) (*JSONSource, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", timezone, err)
	}
	return &JSONSource{
		url:      url,
		path:     path,
		location: loc,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}, nil
}

func (s *JSONSource) FetchMonthEntries(ctx context.Context, year, month int, includeAdjacent bool) ([]models.ScheduleEntry, error) {
	raw, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode schedule json: %w", err)
	}

	entries := ExtractMonthEntries(data, year, month, s.location, includeAdjacent)
	s.log.Debug("extracted schedule entries",
		zap.Int("year", year), zap.Int("month", month), zap.Int("count", len(entries)))
	return entries, nil
}

func (s *JSONSource) load(ctx context.Context) ([]byte, error) {
	if s.url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch schedule json: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch schedule json: unexpected status %s", resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(s.path)
}

// dateWindow is the inclusive date range accepted for a month.
type dateWindow struct {
	start time.Time
	end   time.Time
}

func (w dateWindow) contains(day time.Time) bool {
	return !day.Before(w.start) && !day.After(w.end)
}

func monthWindow(year, month int, loc *time.Location, includeAdjacent bool) dateWindow {
	if includeAdjacent {
		start, end := schedule.VisibleDateRange(year, month, loc)
		return dateWindow{start: start, end: end}
	}
	start, end := schedule.MonthDateRange(year, month, loc)
	return dateWindow{start: start, end: end}
}

// recordShape is one named accepted document shape. Shapes are tried in
// order; the first one that matches the payload wins.
type recordShape interface {
	name() string
	extract(payload map[string]any, win dateWindow, loc *time.Location) ([]models.ScheduleEntry, bool)
}

// datesMapShape: {"dates": {"2025-09-01": [ {...}, ... ]}}.
type datesMapShape struct{}

func (datesMapShape) name() string { return "dates-map" }

func (datesMapShape) extract(payload map[string]any, win dateWindow, loc *time.Location) ([]models.ScheduleEntry, bool) {
	dates, ok := payload["dates"].(map[string]any)
	if !ok {
		return nil, false
	}
	var out []models.ScheduleEntry
	for rawDate, groups := range dates {
		day, ok := parseDateYMD(rawDate, loc)
		if !ok || !win.contains(day) {
			continue
		}
		switch v := groups.(type) {
		case []any:
			for _, group := range v {
				if entry, ok := buildEntryFromRecord(group, day, loc, nil, nil); ok {
					out = append(out, entry)
				}
			}
		default:
			if entry, ok := buildEntryFromRecord(v, day, loc, nil, nil); ok {
				out = append(out, entry)
			}
		}
	}
	return out, true
}

// entryListShape: a flat record list under one of the conventional keys,
// each record carrying its own date.
type entryListShape struct {
	keys []string
}

func (entryListShape) name() string { return "entry-list" }

func (s entryListShape) extract(payload map[string]any, win dateWindow, loc *time.Location) ([]models.ScheduleEntry, bool) {
	for _, key := range s.keys {
		values, ok := payload[key].([]any)
		if !ok {
			continue
		}
		var out []models.ScheduleEntry
		for _, item := range values {
			entry, ok := buildEntryFromAnyDate(item, loc)
			if !ok || !win.contains(entry.Day) {
				continue
			}
			out = append(out, entry)
		}
		if len(out) > 0 {
			return out, true
		}
	}
	return nil, false
}

var recordShapes = []recordShape{
	datesMapShape{},
	entryListShape{keys: []string{"entries", "schedules", "lessons", "items"}},
}

// ExtractMonthEntries pulls the month's entries out of a free-form schedule
// document. The document may wrap its payload one level under "data".
func ExtractMonthEntries(data map[string]any, year, month int, loc *time.Location, includeAdjacent bool) []models.ScheduleEntry {
	if loc == nil {
		loc = schedule.JST
	}
	win := monthWindow(year, month, loc, includeAdjacent)

	payload := data
	if wrapped, ok := data["data"].(map[string]any); ok {
		payload = wrapped
	}

	var out []models.ScheduleEntry
	for _, shape := range recordShapes {
		entries, ok := shape.extract(payload, win, loc)
		if ok && len(entries) > 0 {
			out = entries
			break
		}
	}

	models.SortEntries(out)
	return out
}

// buildEntryFromAnyDate builds an entry from a record that carries its own
// date under one of the accepted aliases. Records with no resolvable day
// are dropped.
func buildEntryFromAnyDate(item any, loc *time.Location) (models.ScheduleEntry, bool) {
	record, ok := item.(map[string]any)
	if !ok {
		return models.ScheduleEntry{}, false
	}

	var day time.Time
	var hasDay bool
	var startDT *time.Time
	for _, key := range dateAliases {
		raw, present := record[key]
		if !present {
			continue
		}
		parsedDay, parsedDT, ok := parseFlexibleDateTime(raw, loc, nil)
		if ok {
			day = parsedDay
			hasDay = true
			if parsedDT != nil {
				startDT = parsedDT
			}
			break
		}
	}
	if !hasDay {
		return models.ScheduleEntry{}, false
	}

	var endDT *time.Time
	for _, key := range endDateAliases {
		raw, present := record[key]
		if !present {
			continue
		}
		if _, parsedDT, ok := parseFlexibleDateTime(raw, loc, &day); ok && parsedDT != nil {
			endDT = parsedDT
			break
		}
	}

	return buildEntryFromRecord(record, day, loc, startDT, endDT)
}

// buildEntryFromRecord maps a record's fields through the alias tables and
// probes the start/end aliases for clock values on the given day.
func buildEntryFromRecord(item any, day time.Time, loc *time.Location, startDT, endDT *time.Time) (models.ScheduleEntry, bool) {
	record, ok := item.(map[string]any)
	if !ok {
		return models.ScheduleEntry{}, false
	}

	classroom := pickText(record, classroomAliases)
	venue := pickText(record, venueAliases)
	title := pickText(record, titleAliases)
	slot := pickText(record, slotAliases)

	if title == "" {
		title = fallbackTitle(record)
	}

	if startDT == nil {
		for _, key := range startAliases {
			raw, present := record[key]
			if !present {
				continue
			}
			parsedDay, parsedDT, ok := parseFlexibleDateTime(raw, loc, &day)
			if ok && parsedDT != nil {
				startDT = parsedDT
				day = parsedDay
				break
			}
		}
	}

	if endDT == nil {
		for _, key := range endAliases {
			raw, present := record[key]
			if !present {
				continue
			}
			if _, parsedDT, ok := parseFlexibleDateTime(raw, loc, &day); ok && parsedDT != nil {
				endDT = parsedDT
				break
			}
		}
	}

	return models.ScheduleEntry{
		Day:       day,
		Title:     title,
		Classroom: classroom,
		Venue:     venue,
		Start:     startDT,
		End:       endDT,
		Slot:      slot,
	}, true
}

// parseFlexibleDateTime accepts RFC3339 timestamps (with offset or Z),
// "YYYY-MM-DD HH:MM", bare "HH:MM" combined with baseDay, and bare dates.
// Full-width digits and separators are narrowed first. The returned day is
// midnight in loc; dt is nil for date-only values.
func parseFlexibleDateTime(raw any, loc *time.Location, baseDay *time.Time) (day time.Time, dt *time.Time, ok bool) {
	value, isString := raw.(string)
	if !isString {
		return time.Time{}, nil, false
	}
	value = strings.TrimSpace(width.Narrow.String(value))
	if value == "" {
		return time.Time{}, nil, false
	}

	if strings.Contains(value, "T") {
		return parseTimestamp(value, loc)
	}

	// Bare clock, "HH:MM" style.
	if len(value) <= 8 && strings.Contains(value, ":") {
		clock, err := time.Parse("15:04", value)
		if err != nil {
			return time.Time{}, nil, false
		}
		base := time.Now().In(loc)
		if baseDay != nil {
			base = *baseDay
		}
		combined := time.Date(base.Year(), base.Month(), base.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		return midnight(combined), &combined, true
	}

	if parsed, ok := parseDateYMD(value, loc); ok {
		return parsed, nil, true
	}

	// Variants like "YYYY-MM-DD HH:MM".
	return parseTimestamp(strings.Replace(value, " ", "T", 1), loc)
}

func parseTimestamp(value string, loc *time.Location) (time.Time, *time.Time, bool) {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		parsed, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		parsed = parsed.In(loc)
		return midnight(parsed), &parsed, true
	}
	return time.Time{}, nil, false
}

func parseDateYMD(raw string, loc *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func midnight(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}
