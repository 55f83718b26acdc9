package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Decoder scans forecast table lines and decodes station rows according to a
// Layout. It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	layout Layout
}

// NewDecoder creates a Decoder for the given layout.
func NewDecoder(layout Layout) *Decoder {
	return &Decoder{layout: layout}
}

// Layout returns the column layout the decoder applies.
func (d *Decoder) Layout() Layout {
	return d.layout
}

// NormalizeStationCode trims and upper-cases a requested station code.
func NormalizeStationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// StationCodes returns the unique station codes of every data line in the
// block, sorted. Lines that do not match the layout are skipped.
func (d *Decoder) StationCodes(lines []string) []string {
	seen := make(map[string]struct{})
	for _, line := range lines {
		fields, ok := d.layout.Extract(line)
		if !ok {
			continue
		}
		seen[fields.Code] = struct{}{}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// FindStationLine returns the first line whose station code matches code.
// It fails with ErrUnknownStation when the whole block has been scanned
// without a match.
func (d *Decoder) FindStationLine(lines []string, code string) (string, error) {
	want := NormalizeStationCode(code)
	if want != "" {
		for _, line := range lines {
			fields, ok := d.layout.Extract(line)
			if ok && strings.EqualFold(fields.Code, want) {
				return line, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStation, want)
}

// DecodeStation finds the station's line and decodes it.
func (d *Decoder) DecodeStation(lines []string, code string) (StationForecast, error) {
	line, err := d.FindStationLine(lines, code)
	if err != nil {
		return StationForecast{}, err
	}
	forecast, _ := d.DecodeLine(line)
	return forecast, nil
}

// DecodeLine decodes a single table line. It returns false when the line is
// not a station row. Tier decode failures are carried in the forecast's
// readings; they never fail the line.
func (d *Decoder) DecodeLine(line string) (StationForecast, bool) {
	fields, ok := d.layout.Extract(line)
	if !ok {
		return StationForecast{}, false
	}

	readings := make([]TierReading, len(d.layout.tiers))
	for i, tier := range d.layout.tiers {
		wind, err := DecodeTier(tier, fields.Columns[i])
		readings[i] = TierReading{Altitude: tier.Altitude, Wind: wind, Err: err}
	}

	return StationForecast{station: fields.Code, readings: readings}, true
}

// DecodeAll decodes every station row of the block in table order. When a
// code appears more than once only its first line is kept, matching
// FindStationLine.
func (d *Decoder) DecodeAll(lines []string) []StationForecast {
	seen := make(map[string]struct{})
	var forecasts []StationForecast
	for _, line := range lines {
		forecast, ok := d.DecodeLine(line)
		if !ok {
			continue
		}
		key := strings.ToUpper(forecast.station)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		forecasts = append(forecasts, forecast)
	}
	return forecasts
}
