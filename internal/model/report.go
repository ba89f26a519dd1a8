package model

import "time"

// Point is one normalized line of the final report: numbering and bullet
// markers stripped, whitespace trimmed. The extractor guarantees no two
// points in a report are equal under case-insensitive comparison.
type Point string

// Report is the final deliverable handed to the emitters.
type Report struct {
	Subject      string    `json:"subject"`
	Organization string    `json:"organization"`
	SubUnit      string    `json:"sub_unit,omitempty"`
	GeneratedAt  time.Time `json:"generated_at"`

	Points []Point `json:"points"`

	// RawMarkdown is the accepted draft verbatim. The point list strips
	// formatting; this keeps links and emphasis for the rendered artifacts.
	RawMarkdown string `json:"raw_markdown"`

	// SpendingAnalysis is the auxiliary agency-spending analysis document,
	// empty when the spending source contributed nothing.
	SpendingAnalysis string `json:"spending_analysis,omitempty"`

	// Sources lists the URLs the web-search adapter actually consulted.
	Sources []string `json:"sources,omitempty"`

	// Iterations is how many rewrites the review loop accepted.
	Iterations int `json:"iterations"`
}
