package schedule_service

import (
	"context"
	"fmt"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/service"
	"atelier-schedule-bot/internal/source"
)

type scheduleService struct {
	source source.EntrySource
}

func NewScheduleService(entrySource source.EntrySource) service.ScheduleService {
	return &scheduleService{source: entrySource}
}

func (s *scheduleService) MonthEntries(ctx context.Context, year, month int, includeAdjacent bool) ([]models.ScheduleEntry, error) {
	entries, err := s.source.FetchMonthEntries(ctx, year, month, includeAdjacent)
	if err != nil {
		return nil, fmt.Errorf("fetch month entries %d-%02d: %w", year, month, err)
	}
	return entries, nil
}
