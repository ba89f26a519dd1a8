package llm

import (
	"fmt"
	"strings"
)

// Perplexity exposes an OpenAI-compatible chat API, so its completer is the
// OpenAI client pointed at a different base URL.
const perplexityBaseURL = "https://api.perplexity.ai"

// New creates a Completer based on configuration. An empty provider returns
// (nil, nil): the model side is disabled and the pipeline degrades to raw
// gathered context.
func New(config Config) (Completer, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIClient(config)

	case "perplexity":
		if config.BaseURL == "" {
			config.BaseURL = perplexityBaseURL
		}
		if config.Model == "" {
			config.Model = "sonar"
		}
		return NewOpenAIClient(config)

	case "anthropic", "claude":
		return NewAnthropicClient(config)

	case "ollama":
		return NewOllamaClient(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama, perplexity)", config.Provider)
	}
}
