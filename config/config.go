package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the movie bot
type Config struct {
	Telegram      TelegramConfig
	TMDB          TMDBConfig
	Database      DatabaseConfig
	Kafka         KafkaConfig
	Logging       LoggingConfig
	Service       ServiceConfig
	Session       SessionConfig
	Notifications NotificationsConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string
}

// TMDBConfig holds catalog (TMDB) client configuration
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration. Empty Brokers disables event publishing.
type KafkaConfig struct {
	Brokers        []string
	FavoritesTopic string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration.
// AdminToken guards the /admin routes; when empty every admin request is rejected.
type ServiceConfig struct {
	Name       string
	Port       string
	AdminToken string
}

// SessionConfig holds browsing session configuration
type SessionConfig struct {
	ShowMoreCooldown time.Duration
	PresentedItems   int
}

// NotificationsConfig holds new-release broadcast configuration
type NotificationsConfig struct {
	Interval        time.Duration
	RunTimeout      time.Duration
	DeliveryTimeout time.Duration
	MaxConcurrent   int
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config        *Config
	Telegram      *TelegramConfig
	TMDB          *TMDBConfig
	Database      *DatabaseConfig
	Kafka         *KafkaConfig
	Logging       *LoggingConfig
	Service       *ServiceConfig
	Session       *SessionConfig
	Notifications *NotificationsConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:        cfg,
		Telegram:      &cfg.Telegram,
		TMDB:          &cfg.TMDB,
		Database:      &cfg.Database,
		Kafka:         &cfg.Kafka,
		Logging:       &cfg.Logging,
		Service:       &cfg.Service,
		Session:       &cfg.Session,
		Notifications: &cfg.Notifications,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		TMDB: TMDBConfig{
			APIKey:       getEnv("TMDB_API_KEY", ""),
			BaseURL:      strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
			ImageBaseURL: strings.TrimRight(getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"), "/"),
			Language:     getEnv("TMDB_LANGUAGE", "ru-RU"),
			Timeout:      getEnvDuration("TMDB_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "movies_user"),
			Password: getEnv("DATABASE_PASSWORD", "movies_pass"),
			Name:     getEnv("DATABASE_NAME", "movies_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:        splitList(getEnv("KAFKA_BROKERS", "")),
			FavoritesTopic: getEnv("KAFKA_FAVORITES_TOPIC", "favorites.events"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name:       getEnv("SERVICE_NAME", "movie-bot"),
			Port:       getEnv("SERVICE_PORT", "8081"),
			AdminToken: getEnv("ADMIN_TOKEN", ""),
		},
		Session: SessionConfig{
			ShowMoreCooldown: getEnvDuration("SESSION_SHOW_MORE_COOLDOWN", 15*time.Second),
			PresentedItems:   getEnvInt("SESSION_PRESENTED_ITEMS", 50),
		},
		Notifications: NotificationsConfig{
			Interval:        getEnvDuration("NOTIFICATIONS_INTERVAL", 24*time.Hour),
			RunTimeout:      getEnvDuration("NOTIFICATIONS_RUN_TIMEOUT", 10*time.Minute),
			DeliveryTimeout: getEnvDuration("NOTIFICATIONS_DELIVERY_TIMEOUT", 10*time.Second),
			MaxConcurrent:   getEnvInt("NOTIFICATIONS_MAX_CONCURRENT", 8),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}

	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}

	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("DATABASE_HOST and DATABASE_NAME are required")
	}

	if c.Session.ShowMoreCooldown <= 0 {
		return fmt.Errorf("SESSION_SHOW_MORE_COOLDOWN must be positive")
	}

	if c.Notifications.Interval <= 0 {
		return fmt.Errorf("NOTIFICATIONS_INTERVAL must be positive")
	}

	if c.Notifications.MaxConcurrent <= 0 {
		return fmt.Errorf("NOTIFICATIONS_MAX_CONCURRENT must be positive")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Enabled reports whether Kafka publishing is configured
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
