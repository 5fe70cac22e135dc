package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("ADMIN_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "ru-RU", cfg.TMDB.Language)
	assert.Equal(t, 15*time.Second, cfg.Session.ShowMoreCooldown)
	assert.Equal(t, 24*time.Hour, cfg.Notifications.Interval)
	assert.Equal(t, 8, cfg.Notifications.MaxConcurrent)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Empty(t, cfg.Service.AdminToken)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("TMDB_BASE_URL", "http://localhost:9999/3/")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("NOTIFICATIONS_INTERVAL", "1h")
	t.Setenv("NOTIFICATIONS_MAX_CONCURRENT", "3")
	t.Setenv("ADMIN_TOKEN", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/3", cfg.TMDB.BaseURL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, time.Hour, cfg.Notifications.Interval)
	assert.Equal(t, 3, cfg.Notifications.MaxConcurrent)
	assert.Equal(t, "s3cret", cfg.Service.AdminToken)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TMDB_API_KEY", "tmdb-key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")

	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TMDB_API_KEY", "")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TMDB_API_KEY")
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "movies", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=movies sslmode=disable", cfg.GetDSN())
}
