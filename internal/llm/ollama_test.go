package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}
		if req.Model != "llama3.1:8b" {
			t.Errorf("Expected model llama3.1:8b, got %s", req.Model)
		}

		resp := ollamaResponse{
			Model:    req.Model,
			Response: "1. Longtime advocate of cloud migration.",
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewOllamaClient(Config{
		BaseURL: server.URL,
		Model:   "llama3.1:8b",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	text, err := client.Complete(context.Background(), CompletionRequest{Prompt: "Draft the briefing."})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "1. Longtime advocate of cloud migration." {
		t.Errorf("Unexpected completion: %q", text)
	}
}

func TestOllamaClient_Complete_RequiresModel(t *testing.T) {
	client, err := NewOllamaClient(Config{BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	_, err = client.Complete(context.Background(), CompletionRequest{Prompt: "hello"})
	if err == nil {
		t.Fatal("Expected error for missing model")
	}
}

func TestOllamaClient_IsAvailable_NotRunning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewOllamaClient(Config{BaseURL: server.URL, Model: "mistral", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if client.IsAvailable(context.Background()) {
		t.Error("Expected IsAvailable=false for HTTP 503")
	}
}
