package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ID source preferences for the single-survivor rule
const (
	PreferIMDb = "imdb"
	PreferTMDb = "tmdb"
)

// Config holds all application configuration
type Config struct {
	// Kodi
	KodiURL      string
	KodiUsername string
	KodiPassword string

	// OpenSubtitles
	OpenSubtitlesAPIKey    string
	OpenSubtitlesUsername  string
	OpenSubtitlesPassword  string
	OpenSubtitlesBaseURL   string
	OpenSubtitlesUserAgent string

	// Search
	Languages         string // comma separated English language names
	PreferredLanguage string
	HearingImpaired   string // include, exclude or only
	ForeignPartsOnly  string // include, exclude or only
	MachineTranslated string // include or exclude
	AITranslated      string // include or exclude
	SubtitleFormat    string

	// Identity resolution
	LibraryCacheTTL    time.Duration
	LibrarySearchLimit int
	IDPreference       string

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/subtitles.db
	TempDir      string // $CONFIG_DIR/temp

	// Downloads
	DownloadRetentionHours int

	// Logging and tracing
	LogLevel       string
	LogFormat      string
	TracingEnabled bool
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("KODI_URL", "http://localhost:8080/jsonrpc")
	viper.SetDefault("OPENSUBTITLES_BASE_URL", "https://api.opensubtitles.com/api/v1")
	viper.SetDefault("OPENSUBTITLES_USER_AGENT", "opensubtitles-com v1.0.0")
	viper.SetDefault("SUBTITLE_LANGUAGES", "English")
	viper.SetDefault("HEARING_IMPAIRED", "include")
	viper.SetDefault("FOREIGN_PARTS_ONLY", "include")
	viper.SetDefault("MACHINE_TRANSLATED", "exclude")
	viper.SetDefault("AI_TRANSLATED", "include")
	viper.SetDefault("SUBTITLE_FORMAT", "srt")
	viper.SetDefault("LIBRARY_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("LIBRARY_SEARCH_LIMIT", 500)
	viper.SetDefault("ID_PREFERENCE", PreferIMDb)
	viper.SetDefault("SERVER_PORT", "8090")
	viper.SetDefault("DOWNLOAD_RETENTION_HOURS", 24)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("TRACING_ENABLED", false)

	configDir, err := resolveConfigDir(viper.GetString("CONFIG_DIR"))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Kodi
		KodiURL:      viper.GetString("KODI_URL"),
		KodiUsername: viper.GetString("KODI_USERNAME"),
		KodiPassword: viper.GetString("KODI_PASSWORD"),

		// OpenSubtitles
		OpenSubtitlesAPIKey:    viper.GetString("OPENSUBTITLES_API_KEY"),
		OpenSubtitlesUsername:  viper.GetString("OPENSUBTITLES_USERNAME"),
		OpenSubtitlesPassword:  viper.GetString("OPENSUBTITLES_PASSWORD"),
		OpenSubtitlesBaseURL:   strings.TrimRight(viper.GetString("OPENSUBTITLES_BASE_URL"), "/"),
		OpenSubtitlesUserAgent: viper.GetString("OPENSUBTITLES_USER_AGENT"),

		// Search
		Languages:         viper.GetString("SUBTITLE_LANGUAGES"),
		PreferredLanguage: viper.GetString("PREFERRED_LANGUAGE"),
		HearingImpaired:   strings.ToLower(viper.GetString("HEARING_IMPAIRED")),
		ForeignPartsOnly:  strings.ToLower(viper.GetString("FOREIGN_PARTS_ONLY")),
		MachineTranslated: strings.ToLower(viper.GetString("MACHINE_TRANSLATED")),
		AITranslated:      strings.ToLower(viper.GetString("AI_TRANSLATED")),
		SubtitleFormat:    viper.GetString("SUBTITLE_FORMAT"),

		// Identity resolution
		LibraryCacheTTL:    time.Duration(viper.GetInt("LIBRARY_CACHE_TTL_SECONDS")) * time.Second,
		LibrarySearchLimit: viper.GetInt("LIBRARY_SEARCH_LIMIT"),
		IDPreference:       strings.ToLower(viper.GetString("ID_PREFERENCE")),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "subtitles.db"),
		TempDir:      filepath.Join(configDir, "temp"),

		// Downloads
		DownloadRetentionHours: viper.GetInt("DOWNLOAD_RETENTION_HOURS"),

		// Logging and tracing
		LogLevel:       viper.GetString("LOG_LEVEL"),
		LogFormat:      viper.GetString("LOG_FORMAT"),
		TracingEnabled: viper.GetBool("TRACING_ENABLED"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks enumerated settings and numeric bounds
func (c *Config) Validate() error {
	if c.IDPreference != PreferIMDb && c.IDPreference != PreferTMDb {
		return fmt.Errorf("ID_PREFERENCE must be %q or %q, got %q", PreferIMDb, PreferTMDb, c.IDPreference)
	}
	if !oneOf(c.HearingImpaired, "include", "exclude", "only") {
		return fmt.Errorf("HEARING_IMPAIRED must be include, exclude or only, got %q", c.HearingImpaired)
	}
	if !oneOf(c.ForeignPartsOnly, "include", "exclude", "only") {
		return fmt.Errorf("FOREIGN_PARTS_ONLY must be include, exclude or only, got %q", c.ForeignPartsOnly)
	}
	if !oneOf(c.MachineTranslated, "include", "exclude") {
		return fmt.Errorf("MACHINE_TRANSLATED must be include or exclude, got %q", c.MachineTranslated)
	}
	if !oneOf(c.AITranslated, "include", "exclude") {
		return fmt.Errorf("AI_TRANSLATED must be include or exclude, got %q", c.AITranslated)
	}
	if c.LibraryCacheTTL <= 0 {
		return fmt.Errorf("LIBRARY_CACHE_TTL_SECONDS must be positive")
	}
	if c.LibrarySearchLimit <= 0 {
		return fmt.Errorf("LIBRARY_SEARCH_LIMIT must be positive")
	}
	if c.DownloadRetentionHours <= 0 {
		return fmt.Errorf("DOWNLOAD_RETENTION_HOURS must be positive")
	}
	return nil
}

func resolveConfigDir(configDir string) (string, error) {
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", "opensubtitles-com"), nil
	}

	// Convert relative path to absolute path
	absPath, err := filepath.Abs(configDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
	}
	return absPath, nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
