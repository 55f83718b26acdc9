package domain

import (
	"context"
	"strings"
	"time"
)

// TableBlock is the preformatted text region of one downloaded forecast page,
// split into lines.
type TableBlock struct {
	Lines     []string
	Source    string // URL or file the block was read from
	FetchedAt time.Time
}

// NewTableBlock splits text into non-empty lines and stamps the fetch time.
func NewTableBlock(text, source string) TableBlock {
	return TableBlock{
		Lines:     SplitLines(text),
		Source:    source,
		FetchedAt: clock.Now().UTC(),
	}
}

// SplitLines splits text on newlines, dropping empty lines and trailing
// carriage returns.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// BlockSource provides a freshly read forecast table on every call.
type BlockSource interface {
	FetchBlock(ctx context.Context) (TableBlock, error)
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
