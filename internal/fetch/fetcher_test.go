package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/govbrief/govbrief/internal/cache"
	"github.com/govbrief/govbrief/internal/model"
)

func testConfig(respectRobots bool) *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Research.RespectRobots = respectRobots
	cfg.Research.RequestsPerSecond = 1000 // keep tests fast
	cfg.Research.Burst = 1000
	return cfg
}

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func TestFetcher_Page_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "govbrief/") {
			t.Errorf("unexpected User-Agent: %q", got)
		}
		_, _ = w.Write([]byte("<html><body><p>Jane Smith biography</p></body></html>"))
	}))
	defer server.Close()

	f := New(testConfig(true), cache.NewMemory(time.Minute))
	f.sleep = noSleep

	html, err := f.Page(context.Background(), server.URL+"/bio")
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if !strings.Contains(html, "Jane Smith biography") {
		t.Errorf("unexpected body: %q", html)
	}
}

func TestFetcher_Page_CacheHit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		calls++
		_, _ = w.Write([]byte("<p>cached page</p>"))
	}))
	defer server.Close()

	f := New(testConfig(true), cache.NewMemory(time.Minute))
	f.sleep = noSleep

	url := server.URL + "/page"
	if _, err := f.Page(context.Background(), url); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if _, err := f.Page(context.Background(), url); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}

func TestFetcher_Page_RetriesTransientStatus(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("<p>recovered</p>"))
	}))
	defer server.Close()

	f := New(testConfig(false), cache.Nop{})
	f.sleep = noSleep

	html, err := f.Page(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if !strings.Contains(html, "recovered") {
		t.Errorf("unexpected body: %q", html)
	}
}

func TestFetcher_Page_NoRetryOnNotFound(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(testConfig(false), cache.Nop{})
	f.sleep = noSleep

	if _, err := f.Page(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404")
	}
	if calls != 1 {
		t.Errorf("expected no retry on 404, got %d calls", calls)
	}
}

func TestFetcher_Page_GivesUpAfterRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := New(testConfig(false), cache.Nop{})
	f.sleep = noSleep

	if _, err := f.Page(context.Background(), server.URL); err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts (initial + 2 retries), got %d", calls)
	}
}

func TestFetcher_Page_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
			return
		}
		_, _ = w.Write([]byte("<p>secret</p>"))
	}))
	defer server.Close()

	f := New(testConfig(true), cache.Nop{})
	f.sleep = noSleep

	if _, err := f.Page(context.Background(), server.URL+"/private/page"); err == nil {
		t.Fatal("expected robots disallow error")
	}

	// Allowed paths still fetch.
	if _, err := f.Page(context.Background(), server.URL+"/public"); err != nil {
		t.Fatalf("expected public path allowed, got %v", err)
	}
}

func TestFetcher_Page_BodySizeCap(t *testing.T) {
	big := strings.Repeat("x", 10_000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(big))
	}))
	defer server.Close()

	cfg := testConfig(false)
	cfg.HTTP.MaxBodyBytes = 1024

	f := New(cfg, cache.Nop{})
	f.sleep = noSleep

	html, err := f.Page(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if len(html) != 1024 {
		t.Errorf("expected body capped at 1024 bytes, got %d", len(html))
	}
}

func TestFetcher_Text_CleansPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<script>var tracker = init();</script>
			<p>Director of Procurement</p>
		</body></html>`))
	}))
	defer server.Close()

	f := New(testConfig(false), cache.Nop{})
	f.sleep = noSleep

	text, err := f.Text(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if strings.Contains(text, "tracker") {
		t.Errorf("expected script content removed, got %q", text)
	}
	if !strings.Contains(text, "Director of Procurement") {
		t.Errorf("expected visible text, got %q", text)
	}
}
