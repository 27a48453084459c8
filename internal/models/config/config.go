package config

// AppConfig is the process-wide configuration, populated by Load.
var AppConfig *Config

// Config is the top-level application config.
type Config struct {
	Environment string
	Bot         BotConfig
	Database    DatabaseConfig
	Schedule    ScheduleConfig
	Render      RenderConfig
}

type BotConfig struct {
	Token     string
	Debug     bool
	AdminIDs  []int64 // admins allowed to publish
	ChannelID int64   // target channel for schedule posts
}

// ScheduleConfig selects and configures the schedule data source.
type ScheduleConfig struct {
	Source   string // "notion" or "json"
	Timezone string

	// Notion source.
	NotionToken       string
	NotionDatabaseID  string
	DateProperty      string
	TitleProperty     string
	ClassroomProperty string
	VenueProperty     string

	// JSON source (URL or local path).
	JSONURL  string
	JSONPath string

	// Caption.
	Title           string
	CaptionTemplate string
	DefaultTags     string
}

// RenderConfig holds calendar image options. Default aspect is 3:4.
type RenderConfig struct {
	Width  int
	Height int

	// Font overrides: a single file/directory, a cache directory and
	// explicit per-role paths. All optional.
	FontPath           string
	FontCacheDir       string
	FontJPRegularPath  string
	FontJPBoldPath     string
	FontNumRegularPath string
	FontNumBoldPath    string
}
