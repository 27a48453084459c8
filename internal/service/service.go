package service

import (
	"context"

	"atelier-schedule-bot/internal/models"
)

// ScheduleService delivers normalized month entries from the configured
// source.
type ScheduleService interface {
	MonthEntries(ctx context.Context, year, month int, includeAdjacent bool) ([]models.ScheduleEntry, error)
}

// Preview is a rendered schedule image that has not been published.
type Preview struct {
	Year     int
	Month    int
	Image    []byte
	Filename string
	MimeType string
	Caption  string
}

// PublisherService renders and publishes monthly schedule images.
// Publish is idempotent per month unless force is set; the returned bool
// reports whether a new post was made.
type PublisherService interface {
	Publish(ctx context.Context, target string, year, month int, force bool) (*models.SchedulePost, bool, error)
	Preview(ctx context.Context, target string, year, month int) (*Preview, error)
	RecentPosts(limit int) ([]models.SchedulePost, error)
}
