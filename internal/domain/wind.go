package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownStation is returned when no line in the table carries the
	// requested station code.
	ErrUnknownStation = errors.New("unknown station code")

	// ErrMalformedTier marks a tier column that looks populated but whose
	// digits cannot be decoded.
	ErrMalformedTier = errors.New("malformed tier data")
)

// WindReading is one decoded forecast for a single altitude tier.
type WindReading struct {
	Direction   int  `json:"direction"` // degrees true, multiple of 10
	Speed       int  `json:"speed"`     // knots
	Temperature *int `json:"temperature,omitempty"`

	// LightAndVariable is set for the "9900" code. Direction and speed are zero.
	LightAndVariable bool `json:"light_and_variable,omitempty"`
}

// TierReading is the decoded content of one altitude column. Wind is nil when
// the table has no forecast for the tier; Err is set when the column was
// populated but could not be decoded.
type TierReading struct {
	Altitude int
	Wind     *WindReading
	Err      error
}

// Present reports whether the tier carries a decoded reading.
func (r TierReading) Present() bool {
	return r.Wind != nil
}

// TierError reports a tier column whose digits could not be decoded.
type TierError struct {
	Altitude int
	Raw      string
	Err      error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("tier %d ft %q: %v", e.Altitude, e.Raw, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}

// StationForecast is the decoded line for one station. Readings are ordered by
// ascending altitude and hold exactly one entry per tier of the layout.
type StationForecast struct {
	station  string
	readings []TierReading
}

// Station returns the station code as written in the table.
func (f StationForecast) Station() string {
	return f.station
}

// Readings returns the structured export: one entry per tier in ascending
// altitude order, absent tiers included with a nil Wind.
func (f StationForecast) Readings() []TierReading {
	out := make([]TierReading, len(f.readings))
	for i, r := range f.readings {
		if r.Wind != nil {
			w := r.Wind.clone()
			r.Wind = &w
		}
		out[i] = r
	}
	return out
}

// Wind returns the reading at altitude, if the tier exists and has one.
func (f StationForecast) Wind(altitude int) (WindReading, bool) {
	for _, r := range f.readings {
		if r.Altitude == altitude && r.Wind != nil {
			return r.Wind.clone(), true
		}
	}
	return WindReading{}, false
}

// Altitudes returns the tier altitudes of the forecast in ascending order.
func (f StationForecast) Altitudes() []int {
	alts := make([]int, len(f.readings))
	for i, r := range f.readings {
		alts[i] = r.Altitude
	}
	return alts
}

// Err joins the tier decode failures of the forecast, or returns nil.
func (f StationForecast) Err() error {
	var errs []error
	for _, r := range f.readings {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// WindEntry is the wire shape of one tier: absent tiers are zero-filled and
// the altitude travels with the entry.
type WindEntry struct {
	Altitude    int `json:"altitude"`
	Direction   int `json:"direction"`
	Speed       int `json:"speed"`
	Temperature int `json:"temp"`
}

// Serializable returns the serializable export in ascending altitude order.
func (f StationForecast) Serializable() []WindEntry {
	entries := make([]WindEntry, len(f.readings))
	for i, r := range f.readings {
		entry := WindEntry{Altitude: r.Altitude}
		if r.Wind != nil {
			entry.Direction = r.Wind.Direction
			entry.Speed = r.Wind.Speed
			if r.Wind.Temperature != nil {
				entry.Temperature = *r.Wind.Temperature
			}
		}
		entries[i] = entry
	}
	return entries
}

type forecastDocument struct {
	Station string      `json:"station"`
	Winds   []WindEntry `json:"winds"`
}

// MarshalJSON encodes the forecast as {"station": ..., "winds": [...]} using
// the serializable export.
func (f StationForecast) MarshalJSON() ([]byte, error) {
	return json.Marshal(forecastDocument{Station: f.station, Winds: f.Serializable()})
}

// StructuredReading is the JSON view of one tier in the structured export.
// Wind is null for an absent tier.
type StructuredReading struct {
	Altitude int          `json:"altitude"`
	Wind     *WindReading `json:"wind"`
	Error    string       `json:"error,omitempty"`
}

// StructuredForecast is the JSON view of the structured export.
type StructuredForecast struct {
	Station  string              `json:"station"`
	Readings []StructuredReading `json:"readings"`
}

// Structured returns the structured export with tier errors rendered as text.
func (f StationForecast) Structured() StructuredForecast {
	readings := f.Readings()
	out := StructuredForecast{
		Station:  f.station,
		Readings: make([]StructuredReading, len(readings)),
	}
	for i, r := range readings {
		out.Readings[i] = StructuredReading{Altitude: r.Altitude, Wind: r.Wind}
		if r.Err != nil {
			out.Readings[i].Error = r.Err.Error()
		}
	}
	return out
}

func (w WindReading) clone() WindReading {
	if w.Temperature != nil {
		t := *w.Temperature
		w.Temperature = &t
	}
	return w
}
