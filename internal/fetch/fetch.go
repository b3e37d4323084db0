package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodyBytes bounds the size of a listing page.
const DefaultMaxBodyBytes int64 = 8 << 20

// ErrUnsupportedContent is returned for 200 responses that are not HTML.
var ErrUnsupportedContent = errors.New("unsupported content type")

// ErrBodyTooLarge is returned when a page exceeds the client's MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

// Client wraps http.Client for a single page retrieval. It never retries.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds the whole exchange including the body read.
	// Zero leaves the HTTP client's own timeout in charge.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int
	// MaxBodyBytes limits the raw body size. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Response is a successfully retrieved page with its body decoded to UTF-8.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// StatusError reports a response whose status code is not 200.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

// Get issues one GET for rawURL. Transport failures come back as
// *TransportError and non-200 statuses as *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	// Reject non-HTTP(S) schemes early
	if !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("unsupported URL scheme: %q", req.URL.String())
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	start := time.Now()
	log.Debug().Str("url", rawURL).Msg("fetching listing")
	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, Classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Msg("non-200 response")
		return nil, &StatusError{Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isAllowedHTMLContentType(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}
	body, err := c.readBody(resp.Body, contentType)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Str("content_type", contentType).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched listing")

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return &Response{
		URL:         finalURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// readBody decodes the body to UTF-8 using the declared charset, falling back
// to <meta> sniffing when the header has none. A body over the size limit is
// an error rather than a truncated page.
func (c *Client) readBody(r io.Reader, contentType string) ([]byte, error) {
	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, Classify(fmt.Errorf("read body: %w", err))
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, limit)
	}
	utf8Body, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	b, err := io.ReadAll(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return b, nil
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// isAllowedHTMLContentType accepts HTML variants. A missing header is let
// through; the parser copes with whatever arrives.
func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "" {
		return true
	}
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
