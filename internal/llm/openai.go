package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient implements Completer for OpenAI's Chat Completions API and
// any OpenAI-compatible endpoint (Perplexity uses this client with its own
// base URL).
type OpenAIClient struct {
	client *openai.Client
	config Config
	name   string
}

// NewOpenAIClient creates a client from configuration.
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", displayName(config.Provider))
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	name := strings.ToLower(config.Provider)
	if name == "" {
		name = "openai"
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		name:   name,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return c.name
}

// IsAvailable checks if the provider is properly configured.
func (c *OpenAIClient) IsAvailable(ctx context.Context) bool {
	_, err := c.client.ListModels(ctx)
	if err != nil {
		// Log the actual error for debugging (this helps users diagnose API key issues)
		fmt.Fprintf(os.Stderr, "%s API check failed: %v\n", displayName(c.name), err)
		return false
	}
	return true
}

// Complete generates text using the Chat Completions API.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := c.config.Model
	if model == "" {
		model = openai.GPT4o
	}

	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens(req, 0),
		Temperature: temperature(req),
	})
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", displayName(c.name), err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", displayName(c.name))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// displayName renders a provider name for error messages.
func displayName(provider string) string {
	switch strings.ToLower(provider) {
	case "perplexity":
		return "Perplexity"
	case "anthropic", "claude":
		return "Anthropic"
	case "ollama":
		return "Ollama"
	default:
		return "OpenAI"
	}
}
