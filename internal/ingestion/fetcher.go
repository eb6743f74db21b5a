package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/DaniloVitorinoPessoa/Coleta-B3/config"
	"github.com/DaniloVitorinoPessoa/Coleta-B3/internal/logger"
)

var (
	// ErrTimeout means the feed endpoint did not answer within the
	// configured timeout. The caller treats it as end-of-run; no retry.
	ErrTimeout = errors.New("feed download timed out")

	// ErrEmptyPayload means the endpoint answered 200 with a zero-length
	// body, which the B3 server does on some maintenance windows.
	ErrEmptyPayload = errors.New("feed payload is empty")
)

// Fetcher downloads the year-versioned COTAHIST archive.
//
// The endpoint rejects unidentified clients, so every request carries the
// configured browser-like User-Agent. Failures are classified but never
// retried here; a failed download fails the whole run.
type Fetcher struct {
	client *resty.Client
	feed   config.FeedConfig
}

// NewFetcher builds a Fetcher from feed settings.
func NewFetcher(feed config.FeedConfig) *Fetcher {
	client := resty.New().
		SetTimeout(feed.Timeout).
		SetHeader("User-Agent", feed.UserAgent)
	// resty retries are explicitly disabled: re-runs are user-triggered.
	client.SetRetryCount(0)

	return &Fetcher{client: client, feed: feed}
}

// Download fetches the archive for the given calendar year and returns its
// raw bytes, which the caller must treat as a ZIP archive.
//
// Failure classification:
//   - ErrTimeout: no response within the configured timeout.
//   - ErrEmptyPayload: 200 response with zero-length body.
//   - any other error: transport or HTTP-status failure (wrapped).
func (f *Fetcher) Download(ctx context.Context, year int) ([]byte, error) {
	feedURL := f.feed.URLForYear(year)
	logger.L().Info().Str("url", feedURL).Dur("timeout", f.feed.Timeout).Msg("downloading feed")

	resp, err := f.client.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w (limit %s): %v", ErrTimeout, f.feed.Timeout, err)
		}
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("feed request failed: status %d for %s", resp.StatusCode(), feedURL)
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, ErrEmptyPayload
	}

	logger.L().Info().Int("bytes", len(body)).Msg("feed downloaded")
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
