// Package fetch retrieves web pages for the research context: per-domain
// rate limiting, robots.txt compliance, bounded retries on transient
// failures, and a process-lifetime response cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/govbrief/govbrief/internal/cache"
	"github.com/govbrief/govbrief/internal/extract"
	"github.com/govbrief/govbrief/internal/model"
	"github.com/govbrief/govbrief/internal/util"
	"github.com/govbrief/govbrief/internal/worker"
)

// Fetcher fetches HTML content from URLs.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	store      cache.Cache
	robots     *util.RobotsChecker // nil disables robots compliance
	limiter    *worker.Limiter
	maxRetries int
	logger     *log.Logger

	// sleep is swapped out in tests so retry backoff does not stall them.
	sleep func(context.Context, time.Duration) error
}

// New creates a Fetcher from the shared configuration. A nil store disables
// caching.
func New(cfg *model.Config, store cache.Cache) *Fetcher {
	if store == nil {
		store = cache.Nop{}
	}

	var robots *util.RobotsChecker
	if cfg.Research.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Fetcher{
		httpClient: util.NewHTTPClient(cfg.HTTP),
		userAgent:  cfg.HTTP.UserAgent,
		maxBytes:   cfg.HTTP.MaxBodyBytes,
		store:      store,
		robots:     robots,
		limiter:    worker.NewLimiter(cfg.Research.RequestsPerSecond, cfg.Research.Burst),
		maxRetries: 2,
		logger:     log.New(os.Stderr, "fetch: ", 0),
		sleep:      sleepCtx,
	}
}

// Page retrieves the raw HTML of a URL, consulting the cache first.
func (f *Fetcher) Page(ctx context.Context, rawURL string) (string, error) {
	key := cache.Key(rawURL)
	if html, found := f.store.Get(key); found {
		return html, nil
	}

	if f.robots != nil {
		allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("robots.txt disallows %s", rawURL)
		}
		if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	} else {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	html, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	f.store.Set(key, html)
	return html, nil
}

// Text retrieves a URL and reduces it to cleaned visible text.
func (f *Fetcher) Text(ctx context.Context, rawURL string) (string, error) {
	html, err := f.Page(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return util.CleanArtifacts(extract.PageText(html)), nil
}

// get performs the HTTP request, retrying transient failures with a doubling
// backoff.
func (f *Fetcher) get(ctx context.Context, rawURL string) (string, error) {
	delay := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, delay); err != nil {
				return "", err
			}
			delay *= 2
		}

		html, retryable, err := f.getOnce(ctx, rawURL)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
		f.logger.Printf("transient failure for %s (attempt %d/%d): %v", rawURL, attempt+1, f.maxRetries+1, err)
	}

	return "", fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

// getOnce performs a single request and reports whether a failure is worth
// retrying.
func (f *Fetcher) getOnce(ctx context.Context, rawURL string) (html string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		// Network errors are transient until proven otherwise.
		return "", true, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}

	return string(body), false, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
