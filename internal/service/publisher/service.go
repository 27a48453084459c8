package publisher_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/models/config"
	"atelier-schedule-bot/internal/poster"
	"atelier-schedule-bot/internal/render"
	"atelier-schedule-bot/internal/repository"
	"atelier-schedule-bot/internal/schedule"
	"atelier-schedule-bot/internal/service"
)

type publisherService struct {
	schedules service.ScheduleService
	renderer  *render.Renderer
	poster    poster.Poster
	posts     repository.SchedulePostRepository
	cfg       config.ScheduleConfig
	log       *zap.Logger
}

func NewPublisherService(
	schedules service.ScheduleService,
	renderer *render.Renderer,
	imagePoster poster.Poster,
	posts repository.SchedulePostRepository,
	cfg config.ScheduleConfig,
	log *zap.Logger,
) service.PublisherService {
	return &publisherService{
		schedules: schedules,
		renderer:  renderer,
		poster:    imagePoster,
		posts:     posts,
		cfg:       cfg,
		log:       log,
	}
}

func (s *publisherService) Publish(ctx context.Context, target string, year, month int, force bool) (*models.SchedulePost, bool, error) {
	year, month, err := schedule.ResolveTargetYearMonth(time.Now(), target, year, month)
	if err != nil {
		return nil, false, err
	}

	if !force {
		existing, err := s.posts.GetLatestByMonth(year, month)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, false, fmt.Errorf("check existing post: %w", err)
		}
		if existing != nil {
			s.log.Info("schedule already posted, skipping",
				zap.Int("year", year), zap.Int("month", month), zap.Int64("post_id", existing.ID))
			return existing, false, nil
		}
	}

	preview, err := s.buildPreview(ctx, year, month)
	if err != nil {
		return nil, false, err
	}

	result, err := s.poster.PostImage(ctx, preview.Image, preview.Filename, preview.MimeType, preview.Caption)
	if err != nil {
		return nil, false, fmt.Errorf("publish schedule %d-%02d: %w", year, month, err)
	}

	post := &models.SchedulePost{
		Year:      year,
		Month:     month,
		Filename:  preview.Filename,
		MimeType:  preview.MimeType,
		Caption:   preview.Caption,
		MessageID: result.MessageID,
		ChatID:    result.ChatID,
	}
	if err := s.posts.Create(post); err != nil {
		// The image is out; a failed log entry must not look like a failed post.
		s.log.Warn("failed to record schedule post", zap.Error(err))
	}
	return post, true, nil
}

func (s *publisherService) Preview(ctx context.Context, target string, year, month int) (*service.Preview, error) {
	year, month, err := schedule.ResolveTargetYearMonth(time.Now(), target, year, month)
	if err != nil {
		return nil, err
	}
	return s.buildPreview(ctx, year, month)
}

func (s *publisherService) RecentPosts(limit int) ([]models.SchedulePost, error) {
	return s.posts.GetRecent(limit)
}

func (s *publisherService) buildPreview(ctx context.Context, year, month int) (*service.Preview, error) {
	entries, err := s.schedules.MonthEntries(ctx, year, month, true)
	if err != nil {
		return nil, err
	}
	s.log.Info("rendering monthly schedule",
		zap.Int("year", year), zap.Int("month", month), zap.Int("entries", len(entries)))

	img := s.renderer.RenderMonth(year, month, entries)
	encoded, err := render.EncodeImage(img, render.MimeJPEG)
	if err != nil {
		return nil, err
	}

	return &service.Preview{
		Year:     year,
		Month:    month,
		Image:    encoded,
		Filename: render.DefaultScheduleFilename(year, month, render.MimeJPEG),
		MimeType: render.MimeJPEG,
		Caption:  schedule.BuildMonthlyCaption(year, month, entries, s.cfg.DefaultTags, s.cfg.CaptionTemplate),
	}, nil
}
