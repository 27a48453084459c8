package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"atelier-schedule-bot/internal/models/config"
	"atelier-schedule-bot/internal/service"
)

// Bot is the Telegram control surface: admins trigger schedule previews
// and publishes through chat commands.
type Bot struct {
	api       *tgbotapi.BotAPI
	Publisher service.PublisherService
	adminIDs  map[int64]bool
	log       *zap.Logger
}

// NewBotAPI authorizes the shared Telegram client used by both the bot
// loop and the channel poster.
func NewBotAPI(log *zap.Logger) (*tgbotapi.BotAPI, error) {
	cfg := config.AppConfig.Bot

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Debug

	log.Info("bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Bool("debug", cfg.Debug))
	return api, nil
}

func NewBot(api *tgbotapi.BotAPI, publisher service.PublisherService, log *zap.Logger) *Bot {
	cfg := config.AppConfig.Bot

	admins := make(map[int64]bool, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = true
	}

	return &Bot{
		api:       api,
		Publisher: publisher,
		adminIDs:  admins,
		log:       log,
	}
}

// Start runs the long-polling update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.adminIDs[userID]
}
