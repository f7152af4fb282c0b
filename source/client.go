// Package source fetches feed documents from http(s) URLs or local files.
package source

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const userAgent = "bikewatch/1.0 (https://github.com/VivianChencwy/bikewatching)"

var (
	fetchCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bikewatch_fetch_total",
		Help: "Number of feed documents fetched",
	}, []string{"source"})
	fetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bikewatch_fetch_errors_total",
		Help: "Number of feed fetches that failed",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(fetchCount, fetchErrors)
}

// Fetcher retrieves a document by URL or path
type Fetcher interface {
	Fetch(ctx context.Context, urlOrPath string) ([]byte, error)
}

// Client fetches feeds over HTTP with retries, or from disk
type Client struct {
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
}

// NewClient creates a client with a 30s timeout and 3 attempts per request
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &uaTransport{next: http.DefaultTransport},
		},
		attempts: 3,
		backoff:  time.Second,
	}
}

type uaTransport struct {
	next http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.next.RoundTrip(req)
}

// Fetch returns the document at urlOrPath. Paths without an http(s) scheme are read from disk.
func (c *Client) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	label := sourceLabel(urlOrPath)
	data, err := c.fetch(ctx, urlOrPath)
	if err != nil {
		fetchErrors.WithLabelValues(label).Inc()
		return nil, err
	}
	fetchCount.WithLabelValues(label).Inc()
	return data, nil
}

func (c *Client) fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, fmt.Errorf("empty feed location")
	}
	if !isRemote(urlOrPath) {
		return os.ReadFile(urlOrPath)
	}

	resp, err := c.getWithRetries(ctx, urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}

// getWithRetries retries transport errors and 502/503/504 responses
func (c *Client) getWithRetries(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if attempt == c.attempts-1 {
			break
		}
		log.Printf("fetch %s: %v, retrying (attempt %d/%d)", reqURL, lastErr, attempt+1, c.attempts)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * c.backoff):
		}
	}
	return nil, fmt.Errorf("failed after %d attempts: %w", c.attempts, lastErr)
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func sourceLabel(urlOrPath string) string {
	if !isRemote(urlOrPath) {
		return "file"
	}
	u, err := url.Parse(urlOrPath)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
