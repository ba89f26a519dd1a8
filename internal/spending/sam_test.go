package spending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSAMClient_Opportunities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") != "sam-test-key" {
			t.Errorf("expected api_key param, got %q", q.Get("api_key"))
		}
		if q.Get("ptype") != "o" {
			t.Errorf("expected ptype=o, got %q", q.Get("ptype"))
		}
		if q.Get("deptname") != "Health and Human Services" {
			t.Errorf("unexpected deptname: %q", q.Get("deptname"))
		}
		if q.Get("postedFrom") != "01/01/2024" || q.Get("postedTo") != "12/31/2024" {
			t.Errorf("unexpected window: %q .. %q", q.Get("postedFrom"), q.Get("postedTo"))
		}

		_, _ = w.Write([]byte(`{
			"totalRecords": 1,
			"opportunitiesData": [{
				"title": "OIG Data Analytics Support",
				"solicitationNumber": "75N98024R00001",
				"postedDate": "2024-06-01",
				"type": "Solicitation",
				"responseDeadLine": "2024-07-01"
			}]
		}`))
	}))
	defer server.Close()

	client := NewSAMClient(server.URL, "sam-test-key", server.Client(), 10)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	opps, err := client.Opportunities(context.Background(), "Health and Human Services", from, to)
	if err != nil {
		t.Fatalf("Opportunities failed: %v", err)
	}
	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}
	if opps[0].Title != "OIG Data Analytics Support" {
		t.Errorf("unexpected title: %q", opps[0].Title)
	}
}

func TestSAMClient_Opportunities_RequiresAPIKey(t *testing.T) {
	client := NewSAMClient("https://api.sam.gov/prod/opportunities/v2/search", "", nil, 10)
	_, err := client.Opportunities(context.Background(), "HHS", time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSAMClient_Opportunities_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer server.Close()

	client := NewSAMClient(server.URL, "bad-key", server.Client(), 10)
	_, err := client.Opportunities(context.Background(), "HHS", time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
}

func TestFormatOpportunities(t *testing.T) {
	opps := []Opportunity{
		{Title: "OIG Data Analytics Support", Solicitation: "75N98024R00001", PostedDate: "2024-06-01", Deadline: "2024-07-01"},
		{Title: "Records Management"},
	}

	got := FormatOpportunities(opps)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if !strings.Contains(lines[0], "75N98024R00001") || !strings.Contains(lines[0], "responses due 2024-07-01") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "- Records Management" {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestFormatOpportunities_Empty(t *testing.T) {
	if got := FormatOpportunities(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
