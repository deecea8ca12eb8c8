// Package fetch retrieves published documents over HTTP.
//
// [Client.Fetch] validates the URL, consults the configured [cache.Cache],
// performs a GET with a timeout and optional retries, and returns the raw
// body. Failures come back as coded errors from pkg/errors:
//
//   - INVALID_URL for URLs that are not absolute http(s) URLs
//   - NOT_FOUND for 404/410 responses
//   - TIMEOUT when the deadline expires
//   - NETWORK_ERROR for everything else
//
// The defaults issue a single request with no cache, so a plain run talks to
// the network exactly once.
package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphgrid/pkg/buildinfo"
	"github.com/matzehuels/glyphgrid/pkg/cache"
	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/httputil"
	"github.com/matzehuels/glyphgrid/pkg/observability"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultAttempts is the number of requests made before giving up.
	DefaultAttempts = 1

	// DefaultRetryDelay is the initial backoff between attempts.
	DefaultRetryDelay = time.Second

	// MaxBodySize caps the accepted document size.
	MaxBodySize = 32 << 20

	cacheKeyType = "document"
)

// ErrTooLarge is returned when a response body exceeds [MaxBodySize].
var ErrTooLarge = stderrors.New("document too large")

// Document is a fetched HTML document.
type Document struct {
	URL         string
	Body        []byte
	ContentType string // empty when served from cache
	FetchedAt   time.Time
	Cached      bool
}

// Options configures a [Client]. Zero values select the defaults.
type Options struct {
	Timeout    time.Duration
	Attempts   int
	RetryDelay time.Duration
	UserAgent  string
	Cache      cache.Cache
	CacheTTL   time.Duration
	Keyer      cache.Keyer
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client fetches documents. It is safe for concurrent use when its cache is.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	ttl       time.Duration
	attempts  int
	delay     time.Duration
	userAgent string
	logger    *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		http:      opts.HTTPClient,
		cache:     opts.Cache,
		keyer:     opts.Keyer,
		ttl:       opts.CacheTTL,
		attempts:  opts.Attempts,
		delay:     opts.RetryDelay,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.attempts <= 0 {
		c.attempts = DefaultAttempts
	}
	if c.delay <= 0 {
		c.delay = DefaultRetryDelay
	}
	if c.userAgent == "" {
		c.userAgent = buildinfo.UserAgent()
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return c
}

// Fetch returns the document at rawURL. With refresh set the cache is not
// read, but a successful response is still written to it.
func (c *Client) Fetch(ctx context.Context, rawURL string, refresh bool) (*Document, error) {
	u, err := errors.ValidateDocumentURL(rawURL)
	if err != nil {
		return nil, err
	}
	target := u.String()
	key := c.keyer.DocumentKey(target)

	if !refresh {
		data, hit, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.logger.Warn("Cache read failed", "err", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			c.logger.Debug("Document served from cache", "url", target, "bytes", len(data))
			return &Document{URL: target, Body: data, FetchedAt: time.Now(), Cached: true}, nil
		default:
			observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		}
	}

	var doc *Document
	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		doc, err = c.get(ctx, u)
		if httputil.IsRetryable(err) {
			c.logger.Debug("Retrying fetch", "url", target, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, classify(err, target)
	}

	if err := c.cache.Set(ctx, key, doc.Body, c.ttl); err != nil {
		c.logger.Warn("Cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(doc.Body))
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) (*Document, error) {
	hooks := observability.HTTP()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(fmt.Errorf("%w: %w", httputil.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: read body: %v", httputil.ErrNetwork, err))
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxBodySize)
	}

	return &Document{
		URL:         u.String(),
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FetchedAt:   time.Now(),
	}, nil
}

func classify(err error, target string) error {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetching %s timed out", target)
	case stderrors.Is(err, httputil.ErrNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, "document %s not found", target)
	case stderrors.Is(err, ErrTooLarge):
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "cannot use document %s", target)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "failed to fetch %s", target)
	}
}
