package ics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotModified is returned when the server answers 304 to a conditional
// request. The caller keeps whatever it imported last time.
var ErrNotModified = errors.New("feed not modified")

// maxBodyBytes bounds a single feed download.
const maxBodyBytes = 16 << 20

// Validators carry the cache validators from the previous successful fetch.
type Validators struct {
	ETag         string
	LastModified string
}

// FetchResult is a fresh feed body plus the validators to send next time.
type FetchResult struct {
	Body         []byte
	ETag         string
	LastModified string
}

// Fetcher downloads ICS feeds over HTTP with conditional requests.
type Fetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates a Fetcher. A nil client gets a 15 second timeout.
func NewFetcher(client *http.Client, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, logger: logger}
}

// Fetch GETs url, sending If-None-Match / If-Modified-Since from prev.
func (f *Fetcher) Fetch(ctx context.Context, url string, prev Validators) (FetchResult, error) {
	if strings.TrimSpace(url) == "" {
		return FetchResult{}, errors.New("feed URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchResult{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "text/calendar, */*;q=0.5")
	if prev.ETag != "" {
		req.Header.Set("If-None-Match", prev.ETag)
	}
	if prev.LastModified != "" {
		req.Header.Set("If-Modified-Since", prev.LastModified)
	}

	log := f.logger.With(zap.String("url", redactURL(url)))
	log.Debug("ics fetch start")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Warn("ics fetch failed", zap.Error(err))
		return FetchResult{}, fmt.Errorf("fetching %s: %w", redactURL(url), err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return FetchResult{}, fmt.Errorf("reading %s: %w", redactURL(url), err)
		}
		log.Info("ics fetch ok", zap.Int("bytes", len(body)))
		return FetchResult{
			Body:         body,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}, nil
	case http.StatusNotModified:
		log.Info("ics feed not modified")
		return FetchResult{}, ErrNotModified
	default:
		log.Warn("ics fetch non-OK", zap.Int("status", resp.StatusCode))
		return FetchResult{}, fmt.Errorf("fetching %s: unexpected status %s", redactURL(url), resp.Status)
	}
}

// redactURL keeps scheme and host only; private feed URLs embed tokens in
// the path or query.
func redactURL(u string) string {
	const redacted = "/...(redacted)"
	i := strings.Index(u, "://")
	if i < 0 {
		return "ics://...(redacted)"
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.IndexByte(rest, '?'); j >= 0 {
		rest = rest[:j]
	}
	return u[:i+3] + rest + redacted
}
