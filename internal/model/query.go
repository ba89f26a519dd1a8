package model

import "strings"

// ResearchQuery identifies who and what to research. It is immutable input:
// every pipeline stage receives it by value and none may change it.
type ResearchQuery struct {
	Subject      string `json:"subject"`                // Person being researched (e.g. "Steven Grunch")
	Organization string `json:"organization"`           // Agency name (e.g. "Department of Homeland Security")
	SubUnit      string `json:"sub_unit,omitempty"`     // Optional bureau/sub-agency
	ProfilePath  string `json:"profile_path,omitempty"` // Optional extracted LinkedIn profile text file
}

// Topic returns the broad search phrase for the query.
func (q ResearchQuery) Topic() string {
	parts := []string{q.Subject, q.Organization}
	if q.SubUnit != "" {
		parts = append(parts, q.SubUnit)
	}
	return strings.Join(parts, " ")
}

// SpendingTopic returns the topic string the spending adapter consumes:
// the agency name, with the bureau appended after " / " when present.
func (q ResearchQuery) SpendingTopic() string {
	if q.SubUnit != "" {
		return q.Organization + " / " + q.SubUnit
	}
	return q.Organization
}

// SourceID classifies where a context chunk came from.
type SourceID string

const (
	SourceWebSearch SourceID = "web-search"           // Search engine results + scraped pages (incl. Perplexity)
	SourceSpending  SourceID = "spending-api"         // USASpending awards + SAM.gov solicitations
	SourcePersonnel SourceID = "personnel-extraction" // People and connections mined from gathered text
	SourceExpertise SourceID = "expertise-extraction" // Technologies and hooks mined from gathered text
)

// SourceChunk is one adapter's raw contribution to the research context.
type SourceChunk struct {
	Origin SourceID `json:"origin"`
	Label  string   `json:"label"` // Human-readable heading used when rendering the blob
	Text   string   `json:"text"`
}

// AggregatedContext is the ordered, labeled output of all adapters for one
// query. It is frozen once the aggregator returns it: downstream stages read
// it, none append to it, and no adapter runs again mid-loop.
type AggregatedContext struct {
	Chunks []SourceChunk `json:"chunks"`
}

// IsEmpty reports whether no adapter produced any text.
func (a AggregatedContext) IsEmpty() bool {
	for _, c := range a.Chunks {
		if strings.TrimSpace(c.Text) != "" {
			return false
		}
	}
	return true
}

// Render concatenates the chunks into the single context blob fed to the
// model calls: "<Label>:\n<text>" blocks joined by blank lines, in call
// order, never reordered or deduplicated.
func (a AggregatedContext) Render() string {
	var blocks []string
	for _, c := range a.Chunks {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		blocks = append(blocks, c.Label+":\n"+c.Text)
	}
	return strings.Join(blocks, "\n\n")
}

// ChunkText returns the text of the first chunk with the given origin, or ""
// when that source contributed nothing.
func (a AggregatedContext) ChunkText(origin SourceID) string {
	for _, c := range a.Chunks {
		if c.Origin == origin {
			return c.Text
		}
	}
	return ""
}
