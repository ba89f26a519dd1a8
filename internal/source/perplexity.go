package source

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/govbrief/govbrief/internal/llm"
	"github.com/govbrief/govbrief/internal/model"
)

// Perplexity asks a search-grounded model for sourced findings about the
// topic. It contributes under the web-search origin: it is an alternative
// web-research backend, not a separate kind of source.
type Perplexity struct {
	completer llm.Completer
	maxTokens int
	logger    *log.Logger
}

// NewPerplexity creates the Perplexity adapter.
func NewPerplexity(completer llm.Completer, maxTokens int) *Perplexity {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &Perplexity{
		completer: completer,
		maxTokens: maxTokens,
		logger:    log.New(os.Stderr, "perplexity: ", 0),
	}
}

func (p *Perplexity) Name() string           { return "perplexity" }
func (p *Perplexity) Origin() model.SourceID { return model.SourceWebSearch }
func (p *Perplexity) Label() string          { return "Perplexity research" }

// Query asks for sourced factual findings about the topic.
func (p *Perplexity) Query(ctx context.Context, topic string) string {
	if topic == "" {
		return ""
	}

	prompt := fmt.Sprintf(
		"Report factual, sourced findings about %s: current role, responsibilities, "+
			"procurement activity, public statements, and professional background. "+
			"One finding per line with its source. Only include facts you can attribute.",
		topic,
	)

	text, err := p.completer.Complete(ctx, llm.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		p.logger.Printf("query failed for %q: %v", topic, err)
		return ""
	}
	return text
}
