package main

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"atelier-schedule-bot/internal/bot"
	"atelier-schedule-bot/internal/models/config"
	"atelier-schedule-bot/internal/poster"
	"atelier-schedule-bot/internal/render"
	"atelier-schedule-bot/internal/repository"
	"atelier-schedule-bot/internal/repository/post"
	"atelier-schedule-bot/internal/service"
	publisher_service "atelier-schedule-bot/internal/service/publisher"
	schedule_service "atelier-schedule-bot/internal/service/schedule"
	"atelier-schedule-bot/internal/source"
	database "atelier-schedule-bot/pkg"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	app := fx.New(
		fx.Provide(
			newLogger,
			database.NewPostgres,
			bot.NewBotAPI,
			newEntrySource,
			newSchedulePostRepository,
			newFontLibrary,
			newRenderer,
			newPoster,
			newScheduleService,
			newPublisherService,
			newBot,
		),
		fx.Invoke(runBot),
	)
	app.Run()
}

func newLogger() (*zap.Logger, error) {
	if config.AppConfig.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newEntrySource picks the schedule backend by configuration: a Notion
// database or a JSON document served over HTTP or read from disk.
func newEntrySource(log *zap.Logger) (source.EntrySource, error) {
	cfg := config.AppConfig.Schedule
	switch cfg.Source {
	case "notion":
		return source.NewNotionSource(cfg.NotionToken, source.NotionConfig{
			DatabaseID:        cfg.NotionDatabaseID,
			DateProperty:      cfg.DateProperty,
			TitleProperty:     cfg.TitleProperty,
			ClassroomProperty: cfg.ClassroomProperty,
			VenueProperty:     cfg.VenueProperty,
			Timezone:          cfg.Timezone,
		}, log)
	case "json":
		return source.NewJSONSource(cfg.JSONURL, cfg.JSONPath, cfg.Timezone, log)
	default:
		return nil, fmt.Errorf("unknown schedule source %q", cfg.Source)
	}
}

func newSchedulePostRepository(db *sqlx.DB) repository.SchedulePostRepository {
	return post.NewSchedulePostRepository(db)
}

func newFontLibrary(log *zap.Logger) (*render.FontLibrary, error) {
	return render.NewFontLibrary(config.AppConfig.Render, log)
}

func newRenderer(fonts *render.FontLibrary) *render.Renderer {
	return render.NewRenderer(config.AppConfig.Render, fonts, config.AppConfig.Schedule.Title)
}

func newPoster(api *tgbotapi.BotAPI, log *zap.Logger) poster.Poster {
	return poster.NewTelegramPoster(api, config.AppConfig.Bot.ChannelID, log)
}

func newScheduleService(entrySource source.EntrySource) service.ScheduleService {
	return schedule_service.NewScheduleService(entrySource)
}

func newPublisherService(
	schedules service.ScheduleService,
	renderer *render.Renderer,
	imagePoster poster.Poster,
	posts repository.SchedulePostRepository,
	log *zap.Logger,
) service.PublisherService {
	return publisher_service.NewPublisherService(
		schedules, renderer, imagePoster, posts, config.AppConfig.Schedule, log)
}

func newBot(api *tgbotapi.BotAPI, publisher service.PublisherService, log *zap.Logger) *bot.Bot {
	return bot.NewBot(api, publisher, log)
}

func runBot(lc fx.Lifecycle, shutdowner fx.Shutdowner, b *bot.Bot, db *sqlx.DB, log *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("starting bot", zap.String("environment", config.AppConfig.Environment))
			go func() {
				if err := b.Start(ctx); err != nil {
					log.Error("bot stopped with error", zap.Error(err))
					shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			log.Info("stopping bot")
			cancel()
			if err := db.Close(); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
			return nil
		},
	})
}
