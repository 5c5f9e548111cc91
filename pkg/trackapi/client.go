package trackapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Config holds client configuration.
type Config struct {
	BaseURL    string       // Optional: API origin including the /api prefix (defaults to DefaultBaseURL)
	HTTPClient *http.Client // Optional: HTTP client (defaults to http.DefaultClient)
	UserAgent  string       // Optional: User-Agent header (defaults to DefaultUserAgent)
	Logger     Logger       // Optional: Logger interface for debug logging

	// MaxResponseBytes caps the size of a page body (defaults to
	// DefaultMaxResponseBytes).
	MaxResponseBytes int64
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client fetches pages of tracks from the API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     Logger
	maxBytes   int64
}

const (
	// DefaultBaseURL is the API origin the playback-history server listens on.
	DefaultBaseURL = "http://localhost:6789/api"

	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "playlog/1.0"

	// DefaultMaxResponseBytes is far above a full page of 30 tracks.
	DefaultMaxResponseBytes = 1 << 20

	tracksPath = "tracks"
)

// NewClient creates a new API client.
//
// Returns an error wrapping ErrInvalidConfig if BaseURL is not an
// absolute http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL %q: %v", ErrInvalidConfig, raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL %q must use http or https", ErrInvalidConfig, raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q has no host", ErrInvalidConfig, raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResponseBytes
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		userAgent:  userAgent,
		logger:     cfg.Logger,
		maxBytes:   maxBytes,
	}, nil
}

// PageURL returns the request URL for the given page index.
func (c *Client) PageURL(page int) string {
	u := c.baseURL.JoinPath(tracksPath)
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// FetchPage retrieves one page of tracks.
//
// Only a 200 response is a success. Any failure is returned as *Error;
// ErrInvalidPage is returned without issuing a request. A JSON null body
// is an empty page.
func (c *Client) FetchPage(ctx context.Context, page int) ([]Track, error) {
	if page < 0 {
		return nil, ErrInvalidPage
	}

	start := time.Now()
	tracks, err := c.fetchPage(ctx, page)
	observeFetch(err, time.Since(start))

	if err != nil {
		c.logDebugf("trackapi: page %d failed: %v", page, err)
		return nil, err
	}

	c.logDebugf("trackapi: page %d returned %d tracks", page, len(tracks))
	return tracks, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]Track, error) {
	pageURL := c.PageURL(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Page: page, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logDebugf("trackapi: GET %s", pageURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Page: page, Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	// Error bodies are never read
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindHTTPStatus, Page: page, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Page: page, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if int64(len(body)) > c.maxBytes {
		return nil, &Error{Kind: KindMalformed, Page: page, Err: fmt.Errorf("response exceeds %d bytes", c.maxBytes)}
	}

	var tracks []Track
	if err := json.Unmarshal(body, &tracks); err != nil {
		return nil, &Error{Kind: KindMalformed, Page: page, Err: err}
	}
	if tracks == nil {
		tracks = []Track{}
	}

	return tracks, nil
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
