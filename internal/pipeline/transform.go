package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/couchcryptid/winds-aloft-etl/internal/observability"
)

// ErrNoStations is returned when a fetched table contains no station rows,
// which usually means the page layout changed.
var ErrNoStations = errors.New("table contains no station rows")

// ForecastTransformer decodes every station of a table and serializes each
// forecast into an output event.
type ForecastTransformer struct {
	decoder *domain.Decoder
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a ForecastTransformer.
func NewTransformer(decoder *domain.Decoder, logger *slog.Logger, metrics *observability.Metrics) *ForecastTransformer {
	return &ForecastTransformer{
		decoder: decoder,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *ForecastTransformer) Transform(_ context.Context, block domain.TableBlock) ([]domain.OutputEvent, error) {
	forecasts := t.decoder.DecodeAll(block.Lines)
	if len(forecasts) == 0 {
		return nil, ErrNoStations
	}

	events := make([]domain.OutputEvent, 0, len(forecasts))
	for _, fc := range forecasts {
		t.recordTierErrors(fc)

		event, err := domain.SerializeForecast(fc, block)
		if err != nil {
			t.logger.Warn("serialize failed, skipping station", "station", fc.Station(), "error", err)
			continue
		}
		events = append(events, event)
	}

	t.metrics.StationsDecoded.Add(float64(len(forecasts)))
	t.metrics.StationsPerRefresh.Observe(float64(len(forecasts)))
	return events, nil
}

func (t *ForecastTransformer) recordTierErrors(fc domain.StationForecast) {
	for _, r := range fc.Readings() {
		if r.Err == nil {
			continue
		}
		t.metrics.TierDecodeErrors.WithLabelValues(strconv.Itoa(r.Altitude)).Inc()
		t.logger.Warn("tier decode failed",
			"station", fc.Station(),
			"altitude", r.Altitude,
			"error", r.Err,
		)
	}
}

// LogLoader stands in for the Kafka sink when publishing is disabled; it logs
// each event instead.
type LogLoader struct {
	logger *slog.Logger
}

// NewLogLoader creates a LogLoader.
func NewLogLoader(logger *slog.Logger) *LogLoader {
	return &LogLoader{logger: logger}
}

func (l *LogLoader) LoadBatch(_ context.Context, events []domain.OutputEvent) error {
	for _, e := range events {
		l.logger.Info("forecast", "station", string(e.Key), "value", string(e.Value))
	}
	return nil
}
