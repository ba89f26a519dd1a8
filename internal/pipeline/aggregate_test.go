package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/govbrief/govbrief/internal/model"
)

// stubAdapter returns a fixed chunk and records whether it was queried.
type stubAdapter struct {
	name    string
	origin  model.SourceID
	text    string
	queried bool
}

func (s *stubAdapter) Name() string           { return s.name }
func (s *stubAdapter) Origin() model.SourceID { return s.origin }
func (s *stubAdapter) Label() string          { return s.name }
func (s *stubAdapter) Query(ctx context.Context, topic string) string {
	s.queried = true
	return s.text
}

func testResearchConfig() model.ResearchConfig {
	return model.ResearchConfig{MaxContextChars: 100, PerSourceChars: 40}
}

func TestAggregator_CollectsChunksInOrder(t *testing.T) {
	agg := newAggregator(testResearchConfig(), nil)
	agg.collect(context.Background(), &stubAdapter{name: "first", origin: model.SourceWebSearch, text: "alpha"}, "t")
	agg.collect(context.Background(), &stubAdapter{name: "second", origin: model.SourceSpending, text: "beta"}, "t")

	got := agg.context()
	if len(got.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got.Chunks))
	}
	if got.Chunks[0].Text != "alpha" || got.Chunks[1].Text != "beta" {
		t.Errorf("chunks out of order: %+v", got.Chunks)
	}
}

func TestAggregator_EmptyOutputContributesNothing(t *testing.T) {
	agg := newAggregator(testResearchConfig(), nil)
	agg.collect(context.Background(), &stubAdapter{name: "dead", text: "   "}, "t")

	if !agg.context().IsEmpty() {
		t.Error("expected no chunk from a blank adapter")
	}
}

func TestAggregator_ClipsToPerSourceBudget(t *testing.T) {
	agg := newAggregator(testResearchConfig(), nil)
	agg.collect(context.Background(), &stubAdapter{name: "long", text: strings.Repeat("x", 200)}, "t")

	chunks := agg.context().Chunks
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if len(chunks[0].Text) > 40 {
		t.Errorf("chunk exceeds per-source budget: %d chars", len(chunks[0].Text))
	}
}

func TestAggregator_SkipsAdaptersOnceBudgetExhausted(t *testing.T) {
	rc := model.ResearchConfig{MaxContextChars: 50, PerSourceChars: 50}
	agg := newAggregator(rc, nil)

	agg.collect(context.Background(), &stubAdapter{name: "big", text: strings.Repeat("a", 60)}, "t")

	late := &stubAdapter{name: "late", text: "should be skipped"}
	agg.collect(context.Background(), late, "t")

	if late.queried {
		t.Error("adapter should not be queried after the budget is spent")
	}
	if got := agg.context(); len(got.Chunks) != 1 {
		t.Errorf("expected only the first chunk, got %d", len(got.Chunks))
	}
}

func TestAggregator_ClipsFinalChunkToRemainingBudget(t *testing.T) {
	rc := model.ResearchConfig{MaxContextChars: 60, PerSourceChars: 50}
	agg := newAggregator(rc, nil)

	agg.collect(context.Background(), &stubAdapter{name: "first", text: strings.Repeat("a", 40)}, "t")
	agg.collect(context.Background(), &stubAdapter{name: "second", text: strings.Repeat("b", 40)}, "t")

	chunks := agg.context().Chunks
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	total := len(chunks[0].Text) + len(chunks[1].Text)
	if total > 60 {
		t.Errorf("total context %d chars exceeds the cap", total)
	}
}

func TestAggregator_TextByOrigin(t *testing.T) {
	agg := newAggregator(testResearchConfig(), nil)
	agg.collect(context.Background(), &stubAdapter{name: "ddg", origin: model.SourceWebSearch, text: "one"}, "t")
	agg.collect(context.Background(), &stubAdapter{name: "awards", origin: model.SourceSpending, text: "two"}, "t")
	agg.collect(context.Background(), &stubAdapter{name: "pplx", origin: model.SourceWebSearch, text: "three"}, "t")

	got := agg.textByOrigin(model.SourceWebSearch)
	if got != "one\n\nthree" {
		t.Errorf("textByOrigin = %q", got)
	}
	if agg.textByOrigin(model.SourcePersonnel) != "" {
		t.Error("expected empty text for an origin with no chunks")
	}
}
