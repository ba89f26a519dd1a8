package pipeline

import (
	"context"
	"strings"

	"github.com/govbrief/govbrief/internal/model"
	"github.com/govbrief/govbrief/internal/source"
)

// aggregator accumulates adapter output into the context blob under two
// budgets: a per-source clip and a total character cap. Both come from
// configuration, never hidden constants.
type aggregator struct {
	perSource int
	maxTotal  int
	used      int
	chunks    []model.SourceChunk
	logf      func(format string, args ...any)
}

func newAggregator(rc model.ResearchConfig, logf func(format string, args ...any)) *aggregator {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &aggregator{
		perSource: rc.PerSourceChars,
		maxTotal:  rc.MaxContextChars,
		logf:      logf,
	}
}

// collect runs one adapter and appends its chunk. Empty output contributes
// nothing; output beyond the remaining budget is clipped; once the budget is
// exhausted later adapters are skipped outright.
func (g *aggregator) collect(ctx context.Context, adapter source.Adapter, topic string) {
	if g.maxTotal > 0 && g.used >= g.maxTotal {
		g.logf("context budget exhausted, skipping %s", adapter.Name())
		return
	}

	text := strings.TrimSpace(adapter.Query(ctx, topic))
	if text == "" {
		g.logf("%s contributed nothing", adapter.Name())
		return
	}

	text = clip(text, g.perSource)
	if g.maxTotal > 0 {
		if remaining := g.maxTotal - g.used; len(text) > remaining {
			text = clip(text, remaining)
		}
	}
	if text == "" {
		return
	}

	g.used += len(text)
	g.chunks = append(g.chunks, model.SourceChunk{
		Origin: adapter.Origin(),
		Label:  adapter.Label(),
		Text:   text,
	})
	g.logf("%s contributed %d chars", adapter.Name(), len(text))
}

// context freezes the accumulated chunks.
func (g *aggregator) context() model.AggregatedContext {
	return model.AggregatedContext{Chunks: g.chunks}
}

// textByOrigin joins the text of every chunk with the given origin, used to
// feed the web-search output into the extraction adapters.
func (g *aggregator) textByOrigin(origin model.SourceID) string {
	var parts []string
	for _, c := range g.chunks {
		if c.Origin == origin {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
