// Package ingest acquires raw catalog rows from a local file, a
// network resource, or the cataloging SQLite database, and parses
// delimited text into raw records.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/katalogapp/katalog-server/internal/domain"
	"github.com/katalogapp/katalog-server/internal/errors"
)

// Source acquires the raw rows for one dataset. Acquisition is made
// exactly once per call; callers decide whether a failure is terminal.
// The int result counts rows dropped by tolerant parsing.
type Source interface {
	Fetch(ctx context.Context) ([]domain.RawRecord, int, error)
}

// FileSource reads delimited text from a local CSV export.
type FileSource struct {
	Path   string
	Logger *slog.Logger
}

// Fetch reads and parses the file. A read failure is terminal for the
// acquisition; row-level parse failures are tolerated and counted.
func (s *FileSource) Fetch(ctx context.Context) ([]domain.RawRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.CodeUnavailable, "read catalog file %s", s.Path)
	}
	return parseWithLog(data, s.Logger)
}

// HTTPSource fetches delimited text from a network resource. One
// attempt, no retries: a failed acquisition is terminal.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

// Fetch performs the single GET and parses the body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.RawRecord, int, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeInternal, "build catalog request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.CodeUnavailable, "fetch catalog from %s", s.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, errors.Unavailable(fmt.Sprintf("fetch catalog from %s: status %d", s.URL, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.CodeUnavailable, "read catalog response from %s", s.URL)
	}
	return parseWithLog(data, s.Logger)
}

func parseWithLog(data []byte, log *slog.Logger) ([]domain.RawRecord, int, error) {
	dropped := 0
	rows, err := ParseRecords(string(data), func(line int, rowErr error) {
		dropped++
		if log != nil {
			log.Warn("dropping malformed row", "line", line, "error", rowErr)
		}
	})
	if err != nil {
		return nil, 0, err
	}
	return rows, dropped, nil
}
