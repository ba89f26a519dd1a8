// Package llm provides the model-call boundary: a Completer turns a prompt
// into text. Call sites treat every provider as best-effort — an error means
// "no text this stage", never a reason to abort the run.
package llm

import (
	"context"

	"github.com/govbrief/govbrief/internal/model"
)

// Completer is the single capability the pipeline needs from a language
// model. Every call is stateless: all conversational memory is carried by
// the caller re-supplying prior text in the prompt.
type Completer interface {
	// Name returns the provider name.
	Name() string

	// Complete generates text for the request. The returned text is trimmed;
	// an empty response without error is legitimate model output.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one model call.
type CompletionRequest struct {
	// System sets the assistant persona (optional).
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens limits the response length. Zero falls back to the provider
	// default.
	MaxTokens int

	// Temperature controls sampling. Zero falls back to 0.3, the focused
	// setting every pipeline stage uses.
	Temperature float32
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "perplexity", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (Ollama, OpenAI-compatible gateways)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts the application LLM section into a provider
// config for the drafting/review provider.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider: mc.Provider,
		Model:    mc.Model,
		APIKey:   mc.APIKey,
		BaseURL:  mc.BaseURL,
		Timeout:  mc.Timeout,
	}
}

// PerplexityConfig builds the provider config for the Perplexity web-research
// backend, which is independent of the drafting provider.
func PerplexityConfig(mc model.LLMConfig) Config {
	return Config{
		Provider: "perplexity",
		Model:    mc.PerplexityModel,
		APIKey:   mc.PerplexityAPIKey,
		Timeout:  mc.Timeout,
	}
}

const defaultTemperature = 0.3

// temperature resolves the request temperature against the shared default.
func temperature(req CompletionRequest) float32 {
	if req.Temperature == 0 {
		return defaultTemperature
	}
	return req.Temperature
}

// maxTokens resolves the request token budget against a provider fallback.
func maxTokens(req CompletionRequest, fallback int) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if fallback > 0 {
		return fallback
	}
	return 1000
}
