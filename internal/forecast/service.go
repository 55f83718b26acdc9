// Package forecast answers station and forecast queries by fetching a fresh
// table and decoding it. It does not cache: every call downloads the page once.
package forecast

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
)

// ErrSourceUnavailable wraps any failure to obtain the forecast table.
var ErrSourceUnavailable = errors.New("forecast source unavailable")

// Service combines a block source with a decoder.
type Service struct {
	source  domain.BlockSource
	decoder *domain.Decoder
}

// NewService creates a Service.
func NewService(source domain.BlockSource, decoder *domain.Decoder) *Service {
	return &Service{source: source, decoder: decoder}
}

// StationCodes fetches the table and lists every station code in it, sorted.
func (s *Service) StationCodes(ctx context.Context) ([]string, error) {
	block, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.decoder.StationCodes(block.Lines), nil
}

// Forecast fetches the table and decodes the forecast for code. An unknown
// code yields an error wrapping domain.ErrUnknownStation.
func (s *Service) Forecast(ctx context.Context, code string) (domain.StationForecast, error) {
	block, err := s.fetch(ctx)
	if err != nil {
		return domain.StationForecast{}, err
	}
	return s.decoder.DecodeStation(block.Lines, code)
}

func (s *Service) fetch(ctx context.Context) (domain.TableBlock, error) {
	block, err := s.source.FetchBlock(ctx)
	if err != nil {
		return domain.TableBlock{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return block, nil
}
