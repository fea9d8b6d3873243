package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xo/dburl"
	"gopkg.in/ini.v1"
)

// Application names accepted by APP / -app
const (
	AppNews  = "news"
	AppNotes = "notes"
)

// Config holds all application configuration
type Config struct {
	// App selects which site is served: "news" or "notes"
	App string

	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Session cookie configuration
	Session SessionConfig

	// Content rules (page size, forbidden words, warnings)
	Content ContentConfig

	// Article import settings
	Import ImportConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string // DATABASE_URL, takes precedence over the discrete fields
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	CookieName   string
	Lifetime     time.Duration
	IdleTimeout  time.Duration
	SecureCookie bool
}

// ContentConfig holds the content rules shared by both sites
type ContentConfig struct {
	NewsPageSize   int
	BadWords       []string
	CommentWarning string
	SlugWarning    string
	SlugMaxLength  int
	LoginURL       string
}

// ImportConfig holds article import settings
type ImportConfig struct {
	BatchSize int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Defaults for the content rules
const (
	DefaultNewsPageSize   = 10
	DefaultCommentWarning = "Не ругайтесь!"
	DefaultSlugWarning    = " - такой slug уже существует, придумайте уникальное значение!"
	DefaultSlugMaxLength  = 100
	DefaultLoginURL       = "/auth/login/"
)

// DefaultBadWords are the forbidden comment words
var DefaultBadWords = []string{"редиска", "негодяй"}

// Load reads configuration from environment variables and the optional CONTENT_CONFIG ini file
func Load() (*Config, error) {
	cfg := &Config{
		App: getEnv("APP", AppNews),
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "newsnotes"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "sessionid"),
			Lifetime:     getDurationEnv("SESSION_LIFETIME", 14*24*time.Hour),
			IdleTimeout:  getDurationEnv("SESSION_IDLE_TIMEOUT", 12*time.Hour),
			SecureCookie: getBoolEnv("SESSION_SECURE_COOKIE", false),
		},
		Content: DefaultContent(),
		Import: ImportConfig{
			BatchSize: getIntEnv("IMPORT_BATCH_SIZE", 1000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	cfg.Content.NewsPageSize = getIntEnv("NEWS_COUNT_ON_HOME_PAGE", cfg.Content.NewsPageSize)

	if path := os.Getenv("CONTENT_CONFIG"); path != "" {
		if err := cfg.Content.LoadFile(path); err != nil {
			return nil, err
		}
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultContent returns the built-in content rules
func DefaultContent() ContentConfig {
	return ContentConfig{
		NewsPageSize:   DefaultNewsPageSize,
		BadWords:       append([]string(nil), DefaultBadWords...),
		CommentWarning: DefaultCommentWarning,
		SlugWarning:    DefaultSlugWarning,
		SlugMaxLength:  DefaultSlugMaxLength,
		LoginURL:       DefaultLoginURL,
	}
}

// LoadFile overrides content rules from an ini file:
//
//	[news]
//	page_size = 10
//	bad_words = редиска, негодяй
//	warning   = Не ругайтесь!
//
//	[notes]
//	slug_warning    = " - такой slug уже существует, придумайте уникальное значение!"
//	slug_max_length = 100
func (c *ContentConfig) LoadFile(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load content config %s: %w", path, err)
	}

	news := file.Section("news")
	c.NewsPageSize = news.Key("page_size").MustInt(c.NewsPageSize)
	if news.HasKey("bad_words") {
		var words []string
		for _, w := range news.Key("bad_words").Strings(",") {
			if w = strings.TrimSpace(w); w != "" {
				words = append(words, w)
			}
		}
		c.BadWords = words
	}
	c.CommentWarning = news.Key("warning").MustString(c.CommentWarning)

	notes := file.Section("notes")
	c.SlugWarning = notes.Key("slug_warning").MustString(c.SlugWarning)
	c.SlugMaxLength = notes.Key("slug_max_length").MustInt(c.SlugMaxLength)

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.App != AppNews && c.App != AppNotes {
		return fmt.Errorf("APP must be %q or %q, got %q", AppNews, AppNotes, c.App)
	}
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	}
	if c.Content.NewsPageSize <= 0 {
		return fmt.Errorf("NEWS_COUNT_ON_HOME_PAGE must be positive")
	}
	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("IMPORT_BATCH_SIZE must be positive")
	}
	if c.Content.SlugMaxLength <= 0 {
		return fmt.Errorf("slug_max_length must be positive")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() (string, error) {
	if c.URL != "" {
		u, err := dburl.Parse(c.URL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		if u.Driver != "postgres" {
			return "", fmt.Errorf("unsupported database driver %q", u.Driver)
		}
		return u.DSN, nil
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	), nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
