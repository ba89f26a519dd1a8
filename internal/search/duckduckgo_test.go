package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const litePage = `
<html><body><table>
<tr><td><a rel="nofollow" href="https://www.dhs.gov/person/jane-smith" class='result-link'>Jane Smith | Homeland Security</a></td></tr>
<tr><td class='result-snippet'>Jane Smith serves as Director of Procurement &amp; Acquisition.</td></tr>
<tr><td><a rel="nofollow" href="https://duckduckgo.com/y.js?ad_domain=x" class='result-link'>Sponsored result</a></td></tr>
<tr><td><a rel="nofollow" href="https://www.linkedin.com/in/janesmith" class='result-link'>Jane Smith - LinkedIn</a></td></tr>
</table></body></html>`

func TestParseResults(t *testing.T) {
	results := parseResults(litePage)

	if len(results) != 2 {
		t.Fatalf("expected 2 results (ad skipped), got %d: %v", len(results), results)
	}
	if results[0].URL != "https://www.dhs.gov/person/jane-smith" {
		t.Errorf("unexpected first URL: %s", results[0].URL)
	}
	if results[0].Title != "Jane Smith | Homeland Security" {
		t.Errorf("unexpected first title: %q", results[0].Title)
	}
	if results[0].Snippet != "Jane Smith serves as Director of Procurement & Acquisition." {
		t.Errorf("expected entities unescaped, got %q", results[0].Snippet)
	}
}

func TestParseResults_Empty(t *testing.T) {
	if results := parseResults("<html><body>no results here</body></html>"); len(results) != 0 {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("q"); got != "Jane Smith Department of Homeland Security" {
			t.Errorf("unexpected query: %q", got)
		}
		_, _ = w.Write([]byte(litePage))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "govbrief-test")
	client.endpoint = server.URL

	results, err := client.Search(context.Background(), "Jane Smith Department of Homeland Security", 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected results capped at 1, got %d", len(results))
	}
}

func TestClient_Search_EmptyQuery(t *testing.T) {
	client := NewClient(nil, "govbrief-test")
	if _, err := client.Search(context.Background(), "   ", 5); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestClient_Search_PacesConsecutiveQueries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(litePage))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "govbrief-test")
	client.endpoint = server.URL

	var slept []time.Duration
	client.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	if _, err := client.Search(context.Background(), "jane smith", 5); err != nil {
		t.Fatalf("first Search failed: %v", err)
	}
	if len(slept) != 0 {
		t.Fatalf("first query should not be paced, slept %v", slept)
	}

	if _, err := client.Search(context.Background(), "jane smith dhs", 5); err != nil {
		t.Fatalf("second Search failed: %v", err)
	}
	if len(slept) != 1 || slept[0] <= 0 || slept[0] > time.Second {
		t.Errorf("expected one pacing sleep within 1s, got %v", slept)
	}

	fresh := NewClient(server.Client(), "govbrief-test")
	fresh.endpoint = server.URL
	var freshSlept []time.Duration
	fresh.sleep = func(ctx context.Context, d time.Duration) error {
		freshSlept = append(freshSlept, d)
		return nil
	}
	if _, err := fresh.Search(context.Background(), "jane smith", 5); err != nil {
		t.Fatalf("fresh client Search failed: %v", err)
	}
	if len(freshSlept) != 0 {
		t.Errorf("fresh client should not inherit another client's pacing, slept %v", freshSlept)
	}
}

func TestClient_Search_RetriesOn429(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(litePage))
	}))
	defer server.Close()

	client := NewClient(server.Client(), "govbrief-test")
	client.endpoint = server.URL

	var slept []time.Duration
	client.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	results, err := client.Search(context.Background(), "jane smith", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Errorf("expected one 1s backoff, got %v", slept)
	}
	if len(results) == 0 {
		t.Error("expected results after retry")
	}
}

func TestClient_Search_GivesUpAfterRepeated429(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.Client(), "govbrief-test")
	client.endpoint = server.URL
	client.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	if _, err := client.Search(context.Background(), "jane smith", 5); err == nil {
		t.Fatal("expected error after repeated 429s")
	}
}
