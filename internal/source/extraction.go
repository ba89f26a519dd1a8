package source

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/govbrief/govbrief/internal/llm"
	"github.com/govbrief/govbrief/internal/model"
)

const extractionSystem = "You are a strategic sales assistant that analyzes research " +
	"text to generate actionable, hyper-specific insights for a pre-call briefing. " +
	"Avoid generic summaries."

// Personnel mines the gathered text for people connected to the subject:
// names, roles, and organizational relationships. Its topic is the text the
// earlier adapters produced, not a search phrase.
type Personnel struct {
	completer llm.Completer
	subject   string
	maxTokens int
	logger    *log.Logger
}

// NewPersonnel creates the personnel-extraction adapter for one subject.
func NewPersonnel(completer llm.Completer, subject string, maxTokens int) *Personnel {
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &Personnel{
		completer: completer,
		subject:   subject,
		maxTokens: maxTokens,
		logger:    log.New(os.Stderr, "personnel: ", 0),
	}
}

func (p *Personnel) Name() string           { return "personnel" }
func (p *Personnel) Origin() model.SourceID { return model.SourcePersonnel }
func (p *Personnel) Label() string          { return "Personnel connections" }

// Query extracts people and connections from the gathered text. An empty
// topic means the earlier adapters produced nothing, so no model call is
// spent.
func (p *Personnel) Query(ctx context.Context, topic string) string {
	if strings.TrimSpace(topic) == "" {
		return ""
	}

	prompt := fmt.Sprintf(
		"Analyze the following research text about %s and identify the people "+
			"connected to them: colleagues, endorsers, counterparts, leadership. "+
			"Include at least 5 specific names with their roles and organizations "+
			"when the text supports it. We are mapping %s's professional network "+
			"before a sales call.\n\nResearch text:\n%s",
		p.subject, p.subject, topic,
	)

	text, err := p.completer.Complete(ctx, llm.CompletionRequest{
		System:    extractionSystem,
		Prompt:    prompt,
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		p.logger.Printf("extraction failed: %v", err)
		return ""
	}
	return text
}

// Expertise mines the gathered text for the subject's technologies,
// programs, and conversation hooks.
type Expertise struct {
	completer llm.Completer
	subject   string
	maxTokens int
	logger    *log.Logger
}

// NewExpertise creates the expertise-extraction adapter for one subject.
func NewExpertise(completer llm.Completer, subject string, maxTokens int) *Expertise {
	if maxTokens <= 0 {
		maxTokens = 1500
	}
	return &Expertise{
		completer: completer,
		subject:   subject,
		maxTokens: maxTokens,
		logger:    log.New(os.Stderr, "expertise: ", 0),
	}
}

func (e *Expertise) Name() string           { return "expertise" }
func (e *Expertise) Origin() model.SourceID { return model.SourceExpertise }
func (e *Expertise) Label() string          { return "Expertise and technologies" }

// Query extracts expertise hooks from the gathered text. An empty topic
// spends no model call.
func (e *Expertise) Query(ctx context.Context, topic string) string {
	if strings.TrimSpace(topic) == "" {
		return ""
	}

	prompt := fmt.Sprintf(
		"Analyze the following research text about %s and extract hyper-specific "+
			"hooks for a sales conversation: technologies, programs, methodologies, "+
			"initiatives, and stated priorities. Include two things most people "+
			"would miss. One hook per line, grounded in the text, no generic fluff."+
			"\n\nResearch text:\n%s",
		e.subject, topic,
	)

	text, err := e.completer.Complete(ctx, llm.CompletionRequest{
		System:    extractionSystem,
		Prompt:    prompt,
		MaxTokens: e.maxTokens,
	})
	if err != nil {
		e.logger.Printf("extraction failed: %v", err)
		return ""
	}
	return text
}
