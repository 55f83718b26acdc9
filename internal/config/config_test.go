package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "winds-aloft-forecasts", cfg.KafkaSinkTopic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, domain.LayoutExtended, cfg.TableLayout.Name())
	assert.Len(t, cfg.TableLayout.Tiers(), 9)
	assert.Equal(t, "0 */6 * * *", cfg.RefreshSchedule)

	from := time.Date(2026, time.October, 15, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC), cfg.Schedule.Next(from))
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("ALOFT_SOURCE_URL", "http://mirror.local/windtemp")
	t.Setenv("ALOFT_FETCH_TIMEOUT", "3s")
	t.Setenv("ALOFT_TABLE_LAYOUT", "low")
	t.Setenv("REFRESH_SCHEDULE", "@hourly")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://mirror.local/windtemp", cfg.SourceURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, domain.LayoutLow, cfg.TableLayout.Name())
	assert.Len(t, cfg.TableLayout.Tiers(), 6)

	from := time.Date(2026, time.October, 15, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC), cfg.Schedule.Next(from))
}

func TestLoad_KafkaDisabled(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s"},
		{"fetch timeout", "ALOFT_FETCH_TIMEOUT", "soon"},
		{"zero fetch timeout", "ALOFT_FETCH_TIMEOUT", "0s"},
		{"source url scheme", "ALOFT_SOURCE_URL", "ftp://aviationweather.gov/windtemp"},
		{"source url host", "ALOFT_SOURCE_URL", "https://"},
		{"layout", "ALOFT_TABLE_LAYOUT", "high"},
		{"schedule", "REFRESH_SCHEDULE", "every six hours"},
		{"schedule never fires", "REFRESH_SCHEDULE", "0 0 30 2 *"},
		{"kafka enabled", "KAFKA_ENABLED", "yes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}
