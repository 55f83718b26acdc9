package aviationweather

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
)

const userAgent = "winds-aloft-etl/1.0"

// Client downloads the forecast page. It implements domain.BlockSource; each
// call performs exactly one request.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given page URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchBlock downloads the page and extracts the forecast table.
func (c *Client) FetchBlock(ctx context.Context) (domain.TableBlock, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.TableBlock{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.TableBlock{}, fmt.Errorf("fetch winds aloft page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.TableBlock{}, fmt.Errorf("winds aloft page: status %d: %s", resp.StatusCode, body)
	}

	block, err := ReadBlock(resp.Body, resp.Header.Get("Content-Type"), c.url)
	if err != nil {
		return domain.TableBlock{}, err
	}

	c.logger.Debug("fetched winds aloft table",
		"url", c.url,
		"lines", len(block.Lines),
		"duration", time.Since(start),
	)
	return block, nil
}
