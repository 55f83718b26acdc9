package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/robfig/cron/v3"
)

// DefaultSourceURL is the low-level, 24 hour winds and temperatures aloft
// page for all regions.
const DefaultSourceURL = "https://www.aviationweather.gov/windtemp/data?region=all&level=low&fcst=24&layout=off"

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaSinkTopic  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Forecast source.
	SourceURL    string
	FetchTimeout time.Duration
	TableLayout  domain.Layout

	// RefreshSchedule is the raw cron expression; Schedule is its parsed form.
	RefreshSchedule string
	Schedule        cron.Schedule
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("ALOFT_FETCH_TIMEOUT", "10s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid ALOFT_FETCH_TIMEOUT")
	}

	sourceURL := sharedcfg.EnvOrDefault("ALOFT_SOURCE_URL", DefaultSourceURL)
	if u, err := url.Parse(sourceURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid ALOFT_SOURCE_URL %q", sourceURL)
	}

	layout, err := domain.LayoutByName(sharedcfg.EnvOrDefault("ALOFT_TABLE_LAYOUT", domain.LayoutExtended))
	if err != nil {
		return nil, fmt.Errorf("invalid ALOFT_TABLE_LAYOUT: %w", err)
	}

	refresh := sharedcfg.EnvOrDefault("REFRESH_SCHEDULE", "0 */6 * * *")
	schedule, err := cron.ParseStandard(refresh)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE: %w", err)
	}
	if schedule.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: never fires", refresh)
	}

	kafkaEnabled := true
	switch v := sharedcfg.EnvOrDefault("KAFKA_ENABLED", "true"); v {
	case "true":
	case "false":
		kafkaEnabled = false
	default:
		return nil, fmt.Errorf("invalid KAFKA_ENABLED %q", v)
	}

	cfg := &Config{
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic:  sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "winds-aloft-forecasts"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SourceURL:    sourceURL,
		FetchTimeout: fetchTimeout,
		TableLayout:  layout,

		RefreshSchedule: refresh,
		Schedule:        schedule,
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	}

	return cfg, nil
}
