package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Name     string
	SSLMode  string
}

// Load populates AppConfig from the environment.
func Load() error {
	env := getEnv("APP_ENV", "development")

	AppConfig = &Config{
		Environment: env,
		Bot: BotConfig{
			Token:     getEnv("BOT_TOKEN", ""),
			Debug:     getEnvAsBool("BOT_DEBUG", env != "production"),
			AdminIDs:  parseAdminIDs(getEnv("ADMIN_IDS", "")),
			ChannelID: getEnvAsInt64("SCHEDULE_CHANNEL_ID", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			Username: getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "atelier-db"),
			SSLMode:  getSSLMode(env),
		},
		Schedule: ScheduleConfig{
			Source:            getEnv("SCHEDULE_SOURCE", "notion"),
			Timezone:          getEnv("SCHEDULE_TIMEZONE", "Asia/Tokyo"),
			NotionToken:       getEnv("NOTION_TOKEN", ""),
			NotionDatabaseID:  getEnv("SCHEDULE_NOTION_DATABASE_ID", ""),
			DateProperty:      getEnv("SCHEDULE_DATE_PROP", "日付"),
			TitleProperty:     getEnv("SCHEDULE_TITLE_PROP", ""),
			ClassroomProperty: getEnv("SCHEDULE_CLASSROOM_PROP", "教室"),
			VenueProperty:     getEnv("SCHEDULE_VENUE_PROP", "会場"),
			JSONURL:           getEnv("SCHEDULE_JSON_URL", ""),
			JSONPath:          getEnv("SCHEDULE_JSON_PATH", ""),
			Title:             getEnv("SCHEDULE_TITLE", "木彫り教室"),
			CaptionTemplate:   getEnv("SCHEDULE_CAPTION_TEMPLATE", ""),
			DefaultTags:       getEnv("SCHEDULE_DEFAULT_TAGS", ""),
		},
		Render: RenderConfig{
			Width:              getEnvAsPositiveInt("SCHEDULE_IMAGE_WIDTH", 1536),
			Height:             getEnvAsPositiveInt("SCHEDULE_IMAGE_HEIGHT", 2048),
			FontPath:           getEnv("SCHEDULE_FONT_PATH", ""),
			FontCacheDir:       getEnv("SCHEDULE_FONT_CACHE_DIR", ""),
			FontJPRegularPath:  getEnv("SCHEDULE_FONT_JP_REGULAR_PATH", ""),
			FontJPBoldPath:     getEnv("SCHEDULE_FONT_JP_BOLD_PATH", ""),
			FontNumRegularPath: getEnv("SCHEDULE_FONT_NUM_REGULAR_PATH", ""),
			FontNumBoldPath:    getEnv("SCHEDULE_FONT_NUM_BOLD_PATH", ""),
		},
	}

	return validate()
}

// validate checks required parameters.
func validate() error {
	var errors []string

	if AppConfig.Bot.Token == "" {
		errors = append(errors, "BOT_TOKEN is required")
	}

	if AppConfig.Bot.ChannelID == 0 {
		errors = append(errors, "SCHEDULE_CHANNEL_ID is required")
	}

	switch AppConfig.Schedule.Source {
	case "notion":
		if AppConfig.Schedule.NotionToken == "" {
			errors = append(errors, "NOTION_TOKEN is required for the notion source")
		}
		if AppConfig.Schedule.NotionDatabaseID == "" {
			errors = append(errors, "SCHEDULE_NOTION_DATABASE_ID is required for the notion source")
		}
	case "json":
		if AppConfig.Schedule.JSONURL == "" && AppConfig.Schedule.JSONPath == "" {
			errors = append(errors, "SCHEDULE_JSON_URL or SCHEDULE_JSON_PATH is required for the json source")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown SCHEDULE_SOURCE %q", AppConfig.Schedule.Source))
	}

	if AppConfig.Database.Username == "" {
		errors = append(errors, "DB_USER is required")
	}

	if AppConfig.Database.Password == "" && AppConfig.Environment == "production" {
		errors = append(errors, "DB_PASSWORD is required in production")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errors, ", "))
	}

	return nil
}

func getSSLMode(env string) string {
	if env == "production" {
		return "require"
	}
	return "disable"
}

// parseAdminIDs parses a comma-separated admin ID list.
func parseAdminIDs(ids string) []int64 {
	if ids == "" {
		return []int64{}
	}

	var result []int64
	for _, idStr := range strings.Split(ids, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil {
			result = append(result, id)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsPositiveInt(key string, fallback int) int {
	value := getEnvAsInt(key, fallback)
	if value <= 0 {
		return fallback
	}
	return value
}
