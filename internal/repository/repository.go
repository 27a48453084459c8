package repository

import (
	"atelier-schedule-bot/internal/models"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "not found" }

type SchedulePostRepository interface {
	Create(post *models.SchedulePost) error
	GetLatestByMonth(year, month int) (*models.SchedulePost, error)
	GetRecent(limit int) ([]models.SchedulePost, error)
}
