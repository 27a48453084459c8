package models

import "time"

// SchedulePost records one published monthly schedule image.
type SchedulePost struct {
	ID        int64     `db:"id" json:"id"`
	Year      int       `db:"year" json:"year"`
	Month     int       `db:"month" json:"month"`
	Filename  string    `db:"filename" json:"filename"`
	MimeType  string    `db:"mime_type" json:"mime_type"`
	Caption   string    `db:"caption" json:"caption"`
	MessageID int       `db:"message_id" json:"message_id"`
	ChatID    int64     `db:"chat_id" json:"chat_id"`
	PostedAt  time.Time `db:"posted_at" json:"posted_at"`
}
