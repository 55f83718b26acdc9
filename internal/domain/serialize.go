package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SerializeForecast encodes a forecast for the sink topic, keyed by station.
func SerializeForecast(forecast StationForecast, block TableBlock) (OutputEvent, error) {
	value, err := json.Marshal(forecast)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize forecast %s: %w", forecast.station, err)
	}

	tierErrors := 0
	for _, r := range forecast.readings {
		if r.Err != nil {
			tierErrors++
		}
	}

	return OutputEvent{
		Key:   []byte(forecast.station),
		Value: value,
		Headers: map[string]string{
			"station":     forecast.station,
			"fetched_at":  block.FetchedAt.Format(time.RFC3339),
			"source":      block.Source,
			"tier_errors": strconv.Itoa(tierErrors),
		},
	}, nil
}
