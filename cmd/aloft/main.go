// Command aloft fetches a winds and temperatures aloft table once and prints
// station codes or decoded forecasts as JSON.
//
// Usage:
//
//	go run ./cmd/aloft -list
//	go run ./cmd/aloft -station CVG
//	go run ./cmd/aloft -file internal/adapter/aviationweather/testdata/windtemp_page.html -station den -structured
//	go run ./cmd/aloft -all -layout low
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/winds-aloft-etl/internal/adapter/aviationweather"
	"github.com/couchcryptid/winds-aloft-etl/internal/config"
	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
	"github.com/couchcryptid/winds-aloft-etl/internal/forecast"
	"github.com/couchcryptid/winds-aloft-etl/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	file       string
	url        string
	layout     string
	timeout    time.Duration
	list       bool
	all        bool
	station    string
	structured bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("aloft", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.file, "file", "", "read a saved page or table instead of fetching")
	fs.StringVar(&opts.url, "url", config.DefaultSourceURL, "forecast page URL")
	fs.StringVar(&opts.layout, "layout", domain.LayoutExtended, "table layout: extended or low")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "fetch timeout")
	fs.BoolVar(&opts.list, "list", false, "print the station codes in the table")
	fs.BoolVar(&opts.all, "all", false, "print the forecast of every station")
	fs.StringVar(&opts.station, "station", "", "print the forecast for one station code")
	fs.BoolVar(&opts.structured, "structured", false, "print per-tier readings with absent tiers as null")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	modes := 0
	for _, set := range []bool{opts.list, opts.all, opts.station != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		fs.Usage()
		return options{}, errors.New("exactly one of -list, -all or -station is required")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "aloft: %v\n", err)
		return 2
	}

	layout, err := domain.LayoutByName(opts.layout)
	if err != nil {
		fmt.Fprintf(stderr, "aloft: %v\n", err)
		return 2
	}
	decoder := domain.NewDecoder(layout)

	var source domain.BlockSource
	if opts.file != "" {
		source = aviationweather.NewFileSource(opts.file)
	} else {
		logger := observability.NewWriterLogger(stderr, "text", "warn")
		source = aviationweather.NewClient(opts.url, opts.timeout, logger)
	}

	out, err := query(ctx, opts, source, decoder)
	if err != nil {
		fmt.Fprintf(stderr, "aloft: %v\n", err)
		if errors.Is(err, domain.ErrUnknownStation) {
			return 3
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "aloft: write output: %v\n", err)
		return 1
	}
	return 0
}

func query(ctx context.Context, opts options, source domain.BlockSource, decoder *domain.Decoder) (any, error) {
	if opts.all {
		block, err := source.FetchBlock(ctx)
		if err != nil {
			return nil, err
		}
		forecasts := decoder.DecodeAll(block.Lines)
		if !opts.structured {
			return forecasts, nil
		}
		out := make([]domain.StructuredForecast, len(forecasts))
		for i, fc := range forecasts {
			out[i] = fc.Structured()
		}
		return out, nil
	}

	svc := forecast.NewService(source, decoder)
	if opts.list {
		return svc.StationCodes(ctx)
	}

	fc, err := svc.Forecast(ctx, opts.station)
	if err != nil {
		return nil, err
	}
	if opts.structured {
		return fc.Structured(), nil
	}
	return fc, nil
}
