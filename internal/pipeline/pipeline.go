// Package pipeline orchestrates the research run: gather context from the
// source adapters, draft a briefing, refine it through the bounded review
// loop, and assemble the final report. Every stage consumes immutable input
// and degrades to thinner output instead of failing the run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/govbrief/govbrief/internal/cache"
	"github.com/govbrief/govbrief/internal/extract"
	"github.com/govbrief/govbrief/internal/fetch"
	"github.com/govbrief/govbrief/internal/llm"
	"github.com/govbrief/govbrief/internal/model"
	"github.com/govbrief/govbrief/internal/search"
	"github.com/govbrief/govbrief/internal/source"
	"github.com/govbrief/govbrief/internal/spending"
)

// Pipeline holds the clients every stage shares. It is constructed once at
// process start from the validated configuration; nothing reads ambient
// globals afterwards.
type Pipeline struct {
	cfg        *model.Config
	completer  llm.Completer // drafting/review provider; nil disables model stages
	perplexity llm.Completer // nil when PERPLEXITY_API_KEY is absent
	searcher   *search.Client
	fetcher    *fetch.Fetcher
	awards     *spending.Client
	sam        *spending.SAMClient // nil when SAMGOV_API_KEY is absent
	logger     *log.Logger
}

// New creates a Pipeline. Provider construction errors are configuration
// errors and therefore fatal: nothing has run yet.
func New(cfg *model.Config) (*Pipeline, error) {
	completer, err := llm.New(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	var perplexity llm.Completer
	if cfg.LLM.PerplexityAPIKey != "" {
		perplexity, err = llm.New(llm.PerplexityConfig(cfg.LLM))
		if err != nil {
			return nil, fmt.Errorf("configure Perplexity provider: %w", err)
		}
	}

	var store cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		store = cache.NewMemory(cfg.Cache.TTL)
	}

	var sam *spending.SAMClient
	if cfg.Spending.SAMAPIKey != "" {
		sam = spending.NewSAMClient(cfg.Spending.SAMBaseURL, cfg.Spending.SAMAPIKey, nil, cfg.Spending.PageLimit)
	}

	return &Pipeline{
		cfg:        cfg,
		completer:  completer,
		perplexity: perplexity,
		searcher:   search.NewClient(nil, cfg.HTTP.UserAgent),
		fetcher:    fetch.New(cfg, store),
		awards:     spending.NewClient(cfg.Spending.BaseURL, nil, cfg.Spending.PageLimit, cfg.Spending.MaxPages, cfg.Spending.YearsBack),
		sam:        sam,
		logger:     log.New(os.Stderr, "pipeline: ", 0),
	}, nil
}

// Run executes the full pipeline for one query.
func (p *Pipeline) Run(ctx context.Context, query model.ResearchQuery) (*model.Report, error) {
	if query.Subject == "" || query.Organization == "" {
		return nil, fmt.Errorf("query requires a subject and an organization")
	}

	agg, sources := p.Gather(ctx, query)
	if agg.IsEmpty() {
		p.logger.Printf("Warning: no source contributed context for %q; briefing will be thin", query.Subject)
	}

	draft := p.DraftBriefing(ctx, agg, query)
	final := p.Refine(ctx, draft, agg, query)
	points, stats := extract.Points(final.Text)
	if p.verbose() {
		p.logf("extracted %d points (%d numbered, %d bulleted, %d verbatim, %d duplicates dropped)",
			len(points), stats.Numbered, stats.Bulleted, stats.Verbatim, stats.Duplicates)
	}

	analysis := p.Analyze(ctx, agg, query)

	return &model.Report{
		Subject:          query.Subject,
		Organization:     query.Organization,
		SubUnit:          query.SubUnit,
		GeneratedAt:      time.Now().UTC(),
		Points:           points,
		RawMarkdown:      final.Text,
		SpendingAnalysis: analysis,
		Sources:          sources,
		Iterations:       final.Iteration,
	}, nil
}

// Gather fans out to the source adapters in fixed priority order and
// freezes their output. Returns the context plus the web URLs actually
// consulted. No adapter failure propagates: a dead source contributes
// nothing and the rest still run.
func (p *Pipeline) Gather(ctx context.Context, query model.ResearchQuery) (model.AggregatedContext, []string) {
	agg := newAggregator(p.cfg.Research, p.logf)

	web := source.NewWebSearch(p.searcher, p.fetcher, p.cfg.Research.MaxSearchResults)
	agg.collect(ctx, web, query.Topic())

	if p.perplexity != nil {
		agg.collect(ctx, source.NewPerplexity(p.perplexity, p.cfg.Review.DraftMaxTokens), query.Topic())
	}

	agg.collect(ctx, source.NewSpending(p.awards, p.samSearcher(), p.cfg.Spending.YearsBack), query.SpendingTopic())

	// The extraction adapters mine whatever the web research produced, plus
	// the optional locally extracted profile text. They run last so their
	// input is complete, and they spend no model call on empty input.
	if p.completer != nil {
		mined := agg.textByOrigin(model.SourceWebSearch)
		if profile := p.profileText(query); profile != "" {
			mined = strings.TrimSpace(mined + "\n\n" + profile)
		}
		agg.collect(ctx, source.NewPersonnel(p.completer, query.Subject, p.cfg.Review.RewriteMaxTokens), mined)
		agg.collect(ctx, source.NewExpertise(p.completer, query.Subject, p.cfg.Review.RewriteMaxTokens), mined)
	}

	return agg.context(), web.Sources()
}

// samSearcher returns the SAM.gov client as the adapter's interface, keeping
// the nil check in one place.
func (p *Pipeline) samSearcher() source.OpportunitySearcher {
	if p.sam == nil {
		return nil
	}
	return p.sam
}

// profileText loads the extracted LinkedIn profile text when the query
// points at one. An unreadable file degrades to no profile, not a failure.
func (p *Pipeline) profileText(query model.ResearchQuery) string {
	if query.ProfilePath == "" {
		return ""
	}
	data, err := os.ReadFile(query.ProfilePath)
	if err != nil {
		p.logger.Printf("Warning: cannot read profile %s: %v", query.ProfilePath, err)
		return ""
	}
	return strings.TrimSpace(string(data))
}

// DraftBriefing produces the iteration-0 draft from the frozen context. A
// model failure yields an empty draft, which the review loop then handles
// like any other draft.
func (p *Pipeline) DraftBriefing(ctx context.Context, agg model.AggregatedContext, query model.ResearchQuery) model.Draft {
	text := p.complete(ctx, "draft", llm.CompletionRequest{
		System:    briefingSystem,
		Prompt:    draftPrompt(query, agg.Render()),
		MaxTokens: p.cfg.Review.DraftMaxTokens,
	})
	return model.Draft{Text: text, Iteration: 0}
}

// Refine drives the review/revise state machine: critique the draft, stop
// when satisfied, otherwise rewrite with the feedback and go again. Exits
// are: verdict satisfied, critique failure (fail open), iteration budget
// exhausted, rewrite failure, or a no-op rewrite. The loop spends at most
// MaxIterations+1 critique calls and MaxIterations rewrite calls.
func (p *Pipeline) Refine(ctx context.Context, draft model.Draft, agg model.AggregatedContext, query model.ResearchQuery) model.Draft {
	contextBlob := agg.Render()

	for {
		critique := p.complete(ctx, "critique", llm.CompletionRequest{
			Prompt:      critiquePrompt(query, draft),
			MaxTokens:   p.cfg.Review.CritiqueMaxTokens,
			Temperature: p.cfg.Review.Temperature,
		})
		if strings.TrimSpace(critique) == "" {
			// A critique failure must never be fatal: accept the draft.
			p.logf("critique unavailable, accepting draft at iteration %d", draft.Iteration)
			return draft
		}

		verdict := parseVerdict(critique)
		if !verdict.Matched {
			p.logf("critique verdict did not parse cleanly, treating whole response as feedback")
		}
		if !verdict.NeedsImprovement {
			p.logf("draft accepted at iteration %d", draft.Iteration)
			return draft
		}

		if draft.Iteration >= p.cfg.Review.MaxIterations {
			p.logger.Printf("Warning: review budget exhausted after %d rewrites, keeping last draft", draft.Iteration)
			return draft
		}

		rewritten := p.complete(ctx, "rewrite", llm.CompletionRequest{
			System:      briefingSystem,
			Prompt:      rewritePrompt(query, draft, verdict.Feedback, contextBlob),
			MaxTokens:   p.cfg.Review.RewriteMaxTokens,
			Temperature: p.cfg.Review.Temperature,
		})
		if strings.TrimSpace(rewritten) == "" {
			// Rewrite failure: keep what we have.
			p.logf("rewrite unavailable, keeping draft at iteration %d", draft.Iteration)
			return draft
		}
		if rewritten == draft.Text {
			// Converged fixed point; another cycle cannot make progress.
			p.logf("rewrite identical to draft, converged at iteration %d", draft.Iteration)
			return draft
		}

		draft = model.Draft{Text: rewritten, Iteration: draft.Iteration + 1}
	}
}

// Analyze produces the auxiliary spending-analysis document from the frozen
// spending chunk. No chunk or no model means no analysis, never a failure.
func (p *Pipeline) Analyze(ctx context.Context, agg model.AggregatedContext, query model.ResearchQuery) string {
	chunk := agg.ChunkText(model.SourceSpending)
	if strings.TrimSpace(chunk) == "" {
		return ""
	}

	return p.complete(ctx, "analysis", llm.CompletionRequest{
		Prompt:      analysisPrompt(query, chunk),
		MaxTokens:   p.cfg.Review.AnalysisMaxTokens,
		Temperature: p.cfg.Review.Temperature,
	})
}

// complete wraps every model call fail-soft: a missing provider or an API
// error becomes empty text, logged, and the stage proceeds degraded.
func (p *Pipeline) complete(ctx context.Context, stage string, req llm.CompletionRequest) string {
	if p.completer == nil {
		return ""
	}
	if req.Temperature == 0 {
		req.Temperature = p.cfg.Review.Temperature
	}
	text, err := p.completer.Complete(ctx, req)
	if err != nil {
		p.logger.Printf("Warning: %s call failed: %v", stage, err)
		return ""
	}
	return text
}

func (p *Pipeline) verbose() bool {
	return p.cfg.Output.Verbose
}

// logf writes verbose progress diagnostics.
func (p *Pipeline) logf(format string, args ...any) {
	if p.verbose() {
		p.logger.Printf(format, args...)
	}
}
