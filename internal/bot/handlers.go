package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := int64(message.From.ID)

	b.log.Debug("incoming message",
		zap.String("username", message.From.UserName),
		zap.Int64("chat_id", chatID),
		zap.String("text", message.Text))

	if !message.IsCommand() {
		return
	}

	switch message.Command() {
	case "start", "help":
		b.handleStartCommand(chatID, userID)
	case "schedule":
		b.handleScheduleCommand(ctx, chatID, userID, message.CommandArguments())
	case "preview":
		b.handlePreviewCommand(ctx, chatID, userID, message.CommandArguments())
	case "status":
		b.handleStatusCommand(chatID, userID)
	default:
		b.sendMessage(chatID, "不明なコマンドです。/help で使い方を確認してください。")
	}
}

func (b *Bot) handleStartCommand(chatID, userID int64) {
	text := `木彫り教室スケジュールボットです。

/schedule [next|current|YYYY MM] [force] — 月間スケジュールをチャンネルへ投稿
/preview [next|current|YYYY MM] — 投稿せずに画像を確認
/status — 最近の投稿履歴`

	if !b.isAdmin(userID) {
		text = "このボットは管理者専用です。"
	}
	b.sendMessage(chatID, text)
}

func (b *Bot) handleScheduleCommand(ctx context.Context, chatID, userID int64, args string) {
	if !b.isAdmin(userID) {
		b.sendMessage(chatID, "このコマンドを実行する権限がありません。")
		return
	}

	target, year, month, force, err := parsePublishArgs(args)
	if err != nil {
		b.sendMessage(chatID, "引数が不正です: "+err.Error())
		return
	}

	post, posted, err := b.Publisher.Publish(ctx, target, year, month, force)
	if err != nil {
		b.log.Error("publish failed", zap.Error(err))
		b.sendMessage(chatID, "投稿に失敗しました: "+err.Error())
		return
	}

	if !posted {
		b.sendMessage(chatID, fmt.Sprintf(
			"%d年%d月のスケジュールは既に投稿済みです (message_id=%d)。再投稿するには force を付けてください。",
			post.Year, post.Month, post.MessageID))
		return
	}
	b.sendMessage(chatID, fmt.Sprintf(
		"%d年%d月のスケジュールを投稿しました (message_id=%d)。", post.Year, post.Month, post.MessageID))
}

func (b *Bot) handlePreviewCommand(ctx context.Context, chatID, userID int64, args string) {
	if !b.isAdmin(userID) {
		b.sendMessage(chatID, "このコマンドを実行する権限がありません。")
		return
	}

	target, year, month, _, err := parsePublishArgs(args)
	if err != nil {
		b.sendMessage(chatID, "引数が不正です: "+err.Error())
		return
	}

	preview, err := b.Publisher.Preview(ctx, target, year, month)
	if err != nil {
		b.log.Error("preview failed", zap.Error(err))
		b.sendMessage(chatID, "プレビューの生成に失敗しました: "+err.Error())
		return
	}

	photo := tgbotapi.NewPhotoUpload(chatID, tgbotapi.FileBytes{
		Name:  preview.Filename,
		Bytes: preview.Image,
	})
	photo.Caption = preview.Caption
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("failed to send preview", zap.Error(err))
		b.sendMessage(chatID, "プレビューの送信に失敗しました。")
	}
}

func (b *Bot) handleStatusCommand(chatID, userID int64) {
	if !b.isAdmin(userID) {
		b.sendMessage(chatID, "このコマンドを実行する権限がありません。")
		return
	}

	posts, err := b.Publisher.RecentPosts(5)
	if err != nil {
		b.log.Error("failed to load recent posts", zap.Error(err))
		b.sendMessage(chatID, "投稿履歴の取得に失敗しました。")
		return
	}
	if len(posts) == 0 {
		b.sendMessage(chatID, "投稿履歴はまだありません。")
		return
	}

	var sb strings.Builder
	sb.WriteString("最近の投稿:\n")
	for _, post := range posts {
		sb.WriteString(fmt.Sprintf("・%d年%02d月 — %s (message_id=%d)\n",
			post.Year, post.Month, post.PostedAt.Format("2006-01-02 15:04"), post.MessageID))
	}
	b.sendMessage(chatID, sb.String())
}

// parsePublishArgs understands "", "next", "current", "2026 3" and an
// optional trailing "force" token.
func parsePublishArgs(args string) (target string, year, month int, force bool, err error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(args)))
	if len(fields) > 0 && fields[len(fields)-1] == "force" {
		force = true
		fields = fields[:len(fields)-1]
	}

	switch len(fields) {
	case 0:
		target = "next"
	case 1:
		if fields[0] != "next" && fields[0] != "current" {
			return "", 0, 0, false, fmt.Errorf("unknown target %q", fields[0])
		}
		target = fields[0]
	case 2:
		year, err = strconv.Atoi(fields[0])
		if err != nil {
			return "", 0, 0, false, fmt.Errorf("invalid year %q", fields[0])
		}
		month, err = strconv.Atoi(fields[1])
		if err != nil {
			return "", 0, 0, false, fmt.Errorf("invalid month %q", fields[1])
		}
	default:
		return "", 0, 0, false, fmt.Errorf("too many arguments")
	}
	return target, year, month, force, nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
