// Package fetch issues the single HTTP GET that retrieves a chapter page.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultUserAgent mimics a mobile browser; several novel sites serve
	// an empty shell to unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 10; Mobile) AppleWebKit/537.36"
	DefaultTimeout   = 30 * time.Second

	maxBodyBytes    = 16 << 20
	maxRedirectHops = 5
)

// NetworkError reports a failed or timed out fetch.
type NetworkError struct {
	URL    string
	Status int // zero when no response was received
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client wraps http.Client with a fixed user agent and timeout.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
	Log        zerolog.Logger
}

// NewClient returns a Client using the given user agent and timeout,
// substituting defaults for empty values.
func NewClient(userAgent string, timeout time.Duration, log zerolog.Logger) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{UserAgent: userAgent, Timeout: timeout, Log: log}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		// Copy so the redirect policy does not leak into the caller's client.
		base := *c.HTTPClient
		base.CheckRedirect = checkRedirect
		return &base
	}
	return &http.Client{Timeout: c.Timeout, CheckRedirect: checkRedirect}
}

// Get fetches rawURL once and returns the body and Content-Type header.
// Every failure is a *NetworkError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", &NetworkError{URL: rawURL, Err: err}
	}
	if !isHTTPScheme(req.URL) {
		return nil, "", &NetworkError{URL: rawURL, Err: fmt.Errorf("unsupported URL scheme %q", req.URL.Scheme)}
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("fetched")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &NetworkError{
			URL:    rawURL,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, "", &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, "", &NetworkError{URL: rawURL, Status: resp.StatusCode, Err: errors.New("response body too large")}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// NormalizeURL trims input and prefixes https:// when no http scheme is given.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(raw), "http") {
		raw = "https://" + raw
	}
	return raw
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirectHops {
		return errors.New("too many redirects")
	}
	if !isHTTPScheme(req.URL) {
		return errors.New("redirect to unsupported scheme")
	}
	return nil
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
