package source

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/govbrief/govbrief/internal/model"
	"github.com/govbrief/govbrief/internal/search"
)

// Searcher is the slice of the search client the adapter needs.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]search.Result, error)
}

// PageFetcher is the slice of the fetcher the adapter needs.
type PageFetcher interface {
	Text(ctx context.Context, rawURL string) (string, error)
}

// WebSearch searches the open web for the topic and scrapes the result
// pages into one text chunk.
type WebSearch struct {
	searcher   Searcher
	fetcher    PageFetcher
	maxResults int
	logger     *log.Logger

	consulted []string
}

// NewWebSearch creates the web-search adapter.
func NewWebSearch(searcher Searcher, fetcher PageFetcher, maxResults int) *WebSearch {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &WebSearch{
		searcher:   searcher,
		fetcher:    fetcher,
		maxResults: maxResults,
		logger:     log.New(os.Stderr, "websearch: ", 0),
	}
}

func (w *WebSearch) Name() string           { return "websearch" }
func (w *WebSearch) Origin() model.SourceID { return model.SourceWebSearch }
func (w *WebSearch) Label() string          { return "Web research" }

// Query searches for the topic and concatenates the scraped page texts,
// each tagged with its URL. Pages that fail to fetch are skipped.
func (w *WebSearch) Query(ctx context.Context, topic string) string {
	w.consulted = nil

	results, err := w.searcher.Search(ctx, topic, w.maxResults)
	if err != nil {
		w.logger.Printf("search failed for %q: %v", topic, err)
		return ""
	}
	if len(results) == 0 {
		w.logger.Printf("no results for %q", topic)
		return ""
	}

	var blocks []string
	for _, result := range results {
		text, err := w.fetcher.Text(ctx, result.URL)
		if err != nil {
			w.logger.Printf("skipping %s: %v", result.URL, err)
			continue
		}
		w.consulted = append(w.consulted, result.URL)
		if strings.TrimSpace(text) == "" {
			continue
		}
		blocks = append(blocks, "Source: "+result.URL+"\n"+text)
	}

	return strings.Join(blocks, "\n\n")
}

// Sources lists the URLs actually consulted by the last Query call.
func (w *WebSearch) Sources() []string {
	return w.consulted
}
