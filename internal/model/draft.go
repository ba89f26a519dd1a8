package model

// Draft is one version of the synthesized briefing text. Drafts are never
// edited in place: each accepted rewrite produces a new Draft with the
// iteration counter advanced by one. Iteration 0 is the initial draft.
type Draft struct {
	Text      string `json:"text"`
	Iteration int    `json:"iteration"`
}

// ReviewVerdict is the parsed output of one critique call.
type ReviewVerdict struct {
	NeedsImprovement bool   `json:"needs_improvement"`
	Feedback         string `json:"feedback,omitempty"` // Free text, consumed verbatim by the rewrite call

	// Matched records whether the verdict line matched one of the recognized
	// forms. False means the parser fell back to treating the whole critique
	// as feedback; the loop behaves the same either way, but verbose logs and
	// tests can tell a clean parse from a heuristic one.
	Matched bool `json:"matched"`
}
