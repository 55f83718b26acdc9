package aviationweather

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/couchcryptid/winds-aloft-etl/internal/domain"
)

// FileSource reads a saved forecast page or table from disk. Files with an
// .html or .htm extension are parsed as HTML, everything else as plain text.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchBlock re-reads the file on every call.
func (s *FileSource) FetchBlock(_ context.Context) (domain.TableBlock, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return domain.TableBlock{}, fmt.Errorf("open table file: %w", err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(s.path))
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	return ReadBlock(f, contentType, s.path)
}
