package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nao1215/wikiracer/internal/model"
)

// Defaults for HTTPSource.
const (
	// DefaultUserAgent identifies wikiracer in HTTP requests.
	DefaultUserAgent = "wikiracer/1.0 (+https://github.com/nao1215/wikiracer)"

	// DefaultMaxBodySize caps how much of a page is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultRequestsPerSecond is the sustained fetch rate against a page server.
	DefaultRequestsPerSecond = 5.0
)

// HTTPSource fetches pages from a server that serves "/wiki/<token>" paths,
// such as a corpus mock server or a MediaWiki installation.
type HTTPSource struct {
	denyList

	// baseURL is prepended to each page identifier.
	baseURL string

	// client performs the requests.
	client *http.Client

	// limiter paces requests; nil means unlimited.
	limiter *rate.Limiter

	// userAgent is the User-Agent header to use.
	userAgent string

	// headers are extra request headers (cookies, auth tokens).
	headers map[string]string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTPSource) {
		h.client = client
	}
}

// WithRateLimit paces requests to rps per second with the given burst.
// A non-positive rps disables rate limiting.
func WithRateLimit(rps float64, burst int) HTTPOption {
	return func(h *HTTPSource) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTPSource) {
		h.userAgent = ua
	}
}

// WithHeaders adds request headers.
func WithHeaders(headers map[string]string) HTTPOption {
	return func(h *HTTPSource) {
		for k, v := range headers {
			h.headers[k] = v
		}
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) HTTPOption {
	return func(h *HTTPSource) {
		if size > 0 {
			h.maxBodySize = size
		}
	}
}

// NewHTTPSource creates an HTTPSource for baseURL (scheme and host, e.g.
// "http://127.0.0.1:8000").
func NewHTTPSource(baseURL string, opts ...HTTPOption) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https: %q", ErrInvalidBaseURL, baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host: %q", ErrInvalidBaseURL, baseURL)
	}

	h := &HTTPSource{
		denyList:    newDenyList(),
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		client:      &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		userAgent:   DefaultUserAgent,
		headers:     make(map[string]string),
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// Fetch downloads the page. A 404 yields Placeholder; other non-2xx
// statuses return ErrUnexpectedStatus.
func (h *HTTPSource) Fetch(ctx context.Context, id model.PageID) (string, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+string(id), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", id, err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Placeholder, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, id, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", id, err)
	}

	return string(body), nil
}
