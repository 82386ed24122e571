package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/university-towns/internal/doctree"
)

const (
	// CollegeTownsURL is the root document listing candidate college towns.
	CollegeTownsURL = "https://en.wikipedia.org/wiki/List_of_college_towns"

	UserAgent = "university-towns-cli/1.0 (github.com/pfrederiksen/university-towns)"

	DefaultTimeout           = 30 * time.Second
	DefaultRetries           = 2
	DefaultRequestsPerSecond = 1.0

	cacheTTL     = 30 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Options configures a Fetcher. A zero Timeout or RequestsPerSecond selects
// the default; a negative Retries selects the default budget.
type Options struct {
	Timeout           time.Duration
	Retries           int     // retry budget per fetch, on top of the first attempt
	RequestsPerSecond float64 // outbound rate limit
	Client            *http.Client
}

// Fetcher retrieves and parses documents from the document source.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *gocache.Cache
	retries uint64
}

// New creates a Fetcher with the given options.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = DefaultRetries
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultRequestsPerSecond
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		cache:   gocache.New(cacheTTL, cacheCleanup),
		retries: uint64(opts.Retries),
	}
}

// Document fetches url and returns its parsed tree. Parsed documents are
// cached per URL, so repeated lookups of the same article cost one request.
func (f *Fetcher) Document(ctx context.Context, url string) (*doctree.Document, error) {
	if cached, ok := f.cache.Get(url); ok {
		return cached.(*doctree.Document), nil
	}

	var body []byte
	op := func() error {
		b, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), f.retries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	doc, err := doctree.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	f.cache.Set(url, doc, gocache.DefaultExpiration)
	return doc, nil
}

// get performs a single rate-limited request attempt.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		// Client errors will not succeed on retry.
		return nil, backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
