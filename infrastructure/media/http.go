// Package media fetches attachment bytes over HTTP.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// HTTPFetcher retrieves attachment bytes from resolved URLs. A non-2xx
// response is a fetch failure; the caller decides what to do with it.
type HTTPFetcher struct {
	log    *slog.Logger
	client *http.Client
}

func NewHTTPFetcher(log *slog.Logger, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		log:    log,
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	// Sniff the magic bytes; a server lying about the payload type is
	// worth a trace but not a failed download.
	declared := resp.Header.Get("Content-Type")
	if declared != "" {
		if detected := mimetype.Detect(data); !mimetype.EqualsAny(declared, detected.String()) {
			f.log.Warn("Content type mismatch on fetched attachment",
				"url", url, "declared", declared, "detected", detected.String())
		}
	}

	return data, nil
}
