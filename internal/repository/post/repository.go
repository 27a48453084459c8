package post

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"atelier-schedule-bot/internal/models"
	"atelier-schedule-bot/internal/repository"
)

type schedulePostRepository struct {
	db *sqlx.DB
}

func NewSchedulePostRepository(db *sqlx.DB) repository.SchedulePostRepository {
	return &schedulePostRepository{db: db}
}

func (r *schedulePostRepository) Create(post *models.SchedulePost) error {
	query := `
		INSERT INTO atelier.schedule_posts (year, month, filename, mime_type, caption, message_id, chat_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, posted_at
	`
	return r.db.QueryRow(
		query,
		post.Year,
		post.Month,
		post.Filename,
		post.MimeType,
		post.Caption,
		post.MessageID,
		post.ChatID,
	).Scan(&post.ID, &post.PostedAt)
}

func (r *schedulePostRepository) GetLatestByMonth(year, month int) (*models.SchedulePost, error) {
	var post models.SchedulePost
	query := `
		SELECT * FROM atelier.schedule_posts
		WHERE year = $1 AND month = $2
		ORDER BY posted_at DESC
		LIMIT 1
	`
	err := r.db.Get(&post, query, year, month)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *schedulePostRepository) GetRecent(limit int) ([]models.SchedulePost, error) {
	var posts []models.SchedulePost
	query := `
		SELECT * FROM atelier.schedule_posts
		ORDER BY posted_at DESC
		LIMIT $1
	`
	if err := r.db.Select(&posts, query, limit); err != nil {
		return nil, err
	}
	return posts, nil
}
