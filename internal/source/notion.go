package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/schedule"
)

// NotionConfig points at the schedule database and names its properties.
type NotionConfig struct {
	DatabaseID        string
	DateProperty      string
	TitleProperty     string
	ClassroomProperty string
	VenueProperty     string
	Timezone          string
}

// NotionSource fetches classroom schedules from a Notion database.
type NotionSource struct {
	client   *notionapi.Client
	cfg      NotionConfig
	location *time.Location
	log      *zap.Logger

	// Discovered lazily when cfg.TitleProperty is empty.
	titleProperty string
}

func NewNotionSource(token string, cfg NotionConfig, log *zap.Logger) (*NotionSource, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", cfg.Timezone, err)
	}
	return &NotionSource{
		client:        notionapi.NewClient(notionapi.Token(token)),
		cfg:           cfg,
		location:      loc,
		log:           log,
		titleProperty: cfg.TitleProperty,
	}, nil
}

func (s *NotionSource) FetchMonthEntries(ctx context.Context, year, month int, includeAdjacent bool) ([]models.ScheduleEntry, error) {
	win := monthWindow(year, month, s.location, includeAdjacent)

	after := notionapi.Date(win.start)
	before := notionapi.Date(win.end)
	request := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.AndCompoundFilter{
			notionapi.PropertyFilter{
				Property: s.cfg.DateProperty,
				Date:     &notionapi.DateFilterCondition{OnOrAfter: &after},
			},
			notionapi.PropertyFilter{
				Property: s.cfg.DateProperty,
				Date:     &notionapi.DateFilterCondition{OnOrBefore: &before},
			},
		},
		Sorts: []notionapi.SortObject{
			{Property: s.cfg.DateProperty, Direction: notionapi.SortOrderASC},
		},
		PageSize: 100,
	}

	var entries []models.ScheduleEntry
	for {
		response, err := s.client.Database.Query(ctx, notionapi.DatabaseID(s.cfg.DatabaseID), request)
		if err != nil {
			return nil, fmt.Errorf("query schedule database: %w", err)
		}

		for _, page := range response.Results {
			entry, ok := s.parsePage(page)
			if !ok {
				continue
			}
			if win.contains(entry.Day) {
				entries = append(entries, entry)
			}
		}

		if !response.HasMore {
			break
		}
		request.StartCursor = response.NextCursor
	}

	s.log.Debug("fetched schedule entries from notion",
		zap.Int("year", year), zap.Int("month", month), zap.Int("count", len(entries)))

	models.SortEntries(entries)
	return entries, nil
}

// parsePage converts one database row. Rows without a date are dropped.
func (s *NotionSource) parsePage(page notionapi.Page) (models.ScheduleEntry, bool) {
	props := page.Properties

	dateProp, ok := props[s.cfg.DateProperty].(*notionapi.DateProperty)
	if !ok || dateProp.Date == nil || dateProp.Date.Start == nil {
		return models.ScheduleEntry{}, false
	}

	day, startDT := s.splitNotionDate(dateProp.Date.Start)
	var endDT *time.Time
	if dateProp.Date.End != nil {
		_, endDT = s.splitNotionDate(dateProp.Date.End)
	}

	title := s.extractTitle(props)

	return models.ScheduleEntry{
		Day:       day,
		Title:     title,
		Classroom: extractPropertyText(props[s.cfg.ClassroomProperty]),
		Venue:     extractPropertyText(props[s.cfg.VenueProperty]),
		Start:     startDT,
		End:       endDT,
		Slot:      schedule.NormalizeSlot("", title),
	}, true
}

// splitNotionDate separates a Notion date value into its day and, for timed
// values, the timestamp in the source timezone. Date-only values arrive as
// exact UTC midnight.
func (s *NotionSource) splitNotionDate(value *notionapi.Date) (time.Time, *time.Time) {
	t := time.Time(*value)
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location), nil
	}
	local := t.In(s.location)
	return midnight(local), &local
}

// extractTitle prefers the configured title property, then discovers the
// database's title column and remembers it.
func (s *NotionSource) extractTitle(props notionapi.Properties) string {
	if s.titleProperty != "" {
		if prop, ok := props[s.titleProperty]; ok {
			if text := extractPropertyText(prop); text != "" {
				return text
			}
		}
	}

	for name, prop := range props {
		if prop.GetType() == notionapi.PropertyTypeTitle {
			s.titleProperty = name
			return extractPropertyText(prop)
		}
	}
	return ""
}

// extractPropertyText renders a property value as plain text.
func extractPropertyText(prop notionapi.Property) string {
	switch p := prop.(type) {
	case *notionapi.TitleProperty:
		return joinRichText(p.Title)
	case *notionapi.RichTextProperty:
		return joinRichText(p.RichText)
	case *notionapi.SelectProperty:
		return strings.TrimSpace(p.Select.Name)
	case *notionapi.StatusProperty:
		return strings.TrimSpace(p.Status.Name)
	case *notionapi.MultiSelectProperty:
		var names []string
		for _, option := range p.MultiSelect {
			if name := strings.TrimSpace(option.Name); name != "" {
				names = append(names, name)
			}
		}
		return strings.Join(names, " ")
	case *notionapi.NumberProperty:
		return formatNumber(p.Number)
	case *notionapi.URLProperty:
		return strings.TrimSpace(p.URL)
	case *notionapi.EmailProperty:
		return strings.TrimSpace(p.Email)
	case *notionapi.PhoneNumberProperty:
		return strings.TrimSpace(p.PhoneNumber)
	case *notionapi.FormulaProperty:
		switch p.Formula.Type {
		case notionapi.FormulaTypeString:
			return strings.TrimSpace(p.Formula.String)
		case notionapi.FormulaTypeNumber:
			return formatNumber(p.Formula.Number)
		case notionapi.FormulaTypeBoolean:
			return strconv.FormatBool(p.Formula.Boolean)
		}
		return ""
	default:
		return ""
	}
}

func joinRichText(items []notionapi.RichText) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item.PlainText)
	}
	return strings.TrimSpace(b.String())
}

func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
