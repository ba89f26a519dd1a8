// Package search provides the web-search collaborator: a scrape of the
// DuckDuckGo lite HTML page, which is the most stable surface for
// unauthenticated result extraction.
package search

import (
	"context"
	"errors"
	"fmt"
	stdhtml "html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

const defaultEndpoint = "https://lite.duckduckgo.com/lite/"

// Result is one search hit.
type Result struct {
	URL     string
	Title   string
	Snippet string
}

// Client scrapes the DuckDuckGo lite interface. The lite endpoint throttles
// aggressively, so each client paces its queries to one per second; the
// pipeline constructs a single client, making that the process rate too.
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string

	paceMu   sync.Mutex
	paceLast time.Time

	// sleep is swapped out in tests so pacing and 429 backoff do not stall
	// them.
	sleep func(context.Context, time.Duration) error
}

// NewClient creates a search client. A nil httpClient gets a 15s-timeout
// default.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		userAgent:  userAgent,
		sleep:      sleepCtx,
	}
}

// Search posts the query to the lite endpoint and scrapes up to max results.
func (c *Client) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}

	if err := c.waitPacing(ctx); err != nil {
		return nil, err
	}

	formData := url.Values{}
	formData.Set("q", query)

	var resp *http.Response
	delay := 1 * time.Second
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(formData.Encode()))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err = c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		_ = resp.Body.Close()

		if attempt >= 3 {
			return nil, fmt.Errorf("duckduckgo rate limited after %d attempts", attempt+1)
		}

		// Back off and retry on 429, doubling the delay up to 30s.
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	results := parseResults(string(body))
	if max > 0 && len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// Result link patterns in the lite page; attribute order varies.
var (
	linkPattern    = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	linkPatternAlt = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	snippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
)

// parseResults extracts results from the lite HTML. The page is a plain
// table of result links and snippet cells.
func parseResults(page string) []Result {
	matches := linkPatternAlt.FindAllStringSubmatch(page, -1)
	if len(matches) == 0 {
		matches = linkPattern.FindAllStringSubmatch(page, -1)
	}
	snippets := snippetPattern.FindAllStringSubmatch(page, -1)

	var results []Result
	for i, match := range matches {
		if len(match) < 3 {
			continue
		}

		resultURL := strings.TrimSpace(match[1])
		title := cleanFragment(match[2])
		if resultURL == "" || title == "" {
			continue
		}
		// Ads go through DuckDuckGo's redirector; skip them.
		if strings.Contains(resultURL, "duckduckgo.com/y.js") {
			continue
		}

		snippet := ""
		if i < len(snippets) && len(snippets[i]) > 1 {
			snippet = cleanFragment(snippets[i][1])
		}

		results = append(results, Result{
			URL:     resultURL,
			Title:   title,
			Snippet: snippet,
		})
	}
	return results
}

// cleanFragment strips residual tags and HTML entities from a scraped value.
func cleanFragment(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(stdhtml.UnescapeString(s))
}

// waitPacing enforces the client's 1 QPS limit.
func (c *Client) waitPacing(ctx context.Context) error {
	c.paceMu.Lock()
	if wait := time.Until(c.paceLast.Add(time.Second)); wait > 0 {
		c.paceMu.Unlock()
		if err := c.sleep(ctx, wait); err != nil {
			return err
		}
		c.paceMu.Lock()
	}
	c.paceLast = time.Now()
	c.paceMu.Unlock()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
