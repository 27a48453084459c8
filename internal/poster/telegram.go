package poster

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// TelegramPoster posts schedule images to a channel.
type TelegramPoster struct {
	api       *tgbotapi.BotAPI
	channelID int64
	log       *zap.Logger
}

func NewTelegramPoster(api *tgbotapi.BotAPI, channelID int64, log *zap.Logger) *TelegramPoster {
	return &TelegramPoster{api: api, channelID: channelID, log: log}
}

func (p *TelegramPoster) PostImage(ctx context.Context, image []byte, filename, mimeType, caption string) (PostResult, error) {
	if err := ctx.Err(); err != nil {
		return PostResult{}, err
	}

	photo := tgbotapi.NewPhotoUpload(p.channelID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: image,
	})
	photo.Caption = caption

	message, err := p.api.Send(photo)
	if err != nil {
		return PostResult{}, fmt.Errorf("send schedule photo: %w", err)
	}

	p.log.Info("posted schedule image",
		zap.String("filename", filename),
		zap.String("mime_type", mimeType),
		zap.Int("message_id", message.MessageID),
		zap.Int64("chat_id", p.channelID))

	return PostResult{MessageID: message.MessageID, ChatID: p.channelID}, nil
}
