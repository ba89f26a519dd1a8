package pipeline

import (
	"fmt"
	"strings"

	"github.com/govbrief/govbrief/internal/model"
)

// System persona shared by the drafting and rewrite calls.
const briefingSystem = "You are a strategic sales assistant preparing a founder or " +
	"seller for a high-impact, personalized conversation with a government buyer. " +
	"Your output is Markdown. Focus on unique hooks, relevant technologies, and " +
	"sharp conversation starters. Avoid generic summaries."

// subjectLine renders "Jane Smith from Department of Homeland Security
// (U.S. Citizenship and Immigration Services)".
func subjectLine(query model.ResearchQuery) string {
	line := fmt.Sprintf("%s from %s", query.Subject, query.Organization)
	if query.SubUnit != "" {
		line += fmt.Sprintf(" (%s)", query.SubUnit)
	}
	return line
}

// draftPrompt asks for the initial briefing.
func draftPrompt(query model.ResearchQuery, contextBlob string) string {
	return fmt.Sprintf(`Using the research context below about %s, write a pre-call sales briefing.

Requirements:
- One discrete point per line, separated by blank lines.
- Every point names the source it came from, inline.
- Hyper-specific: roles, programs, dollar figures, named people, named technologies.
- No vague or hedging language ("may", "possibly", "seems to").
- No generic filler that would apply to any official.

Research context:
%s`, subjectLine(query), contextBlob)
}

// critiquePrompt asks for a structured verdict on the current draft.
func critiquePrompt(query model.ResearchQuery, draft model.Draft) string {
	return fmt.Sprintf(`You are reviewing a pre-call sales briefing about %s against these criteria:
1. Every point is factually grounded in research, with its source named inline.
2. Every point is specific enough to use on a call (names, programs, figures).
3. The briefing is call-ready: a seller could open a conversation from it.
4. No hedging language, no generic filler, no speculative sourcing.

Respond in exactly this format:
NEEDS_IMPROVEMENT: true or false
FEEDBACK:
<what to fix, one item per line; omit when nothing needs fixing>

Briefing to review:
%s`, subjectLine(query), draft.Text)
}

// rewritePrompt asks for an improved draft given the critique feedback. The
// original research context rides along because each call is stateless.
func rewritePrompt(query model.ResearchQuery, draft model.Draft, feedback, contextBlob string) string {
	return fmt.Sprintf(`Improve the following pre-call sales briefing about %s.

Reviewer feedback to address:
%s

Keep the format: one sourced point per line, blank-line separated, specific, no filler.
Return the full improved briefing, not a diff.

Current briefing:
%s

Original research context:
%s`, subjectLine(query), feedback, draft.Text, contextBlob)
}

// analysisPrompt asks for the auxiliary spending analysis from the frozen
// spending chunk.
func analysisPrompt(query model.ResearchQuery, spendingChunk string) string {
	target := query.Organization
	if query.SubUnit != "" {
		target += " - " + query.SubUnit
	}
	return fmt.Sprintf(`Analyze the following USA spending data for %s:

Please provide:
1. Key spending patterns and trends
2. Notable contractors and award sizes
3. Main categories of spending

DO NOT NOTE:
1. If there is a 0 or empty column, or anything that is a data error, DO NOT comment on it.

Agency Spending Data:
%s`, target, spendingChunk)
}

// clip bounds a string to max characters, cutting at a line boundary when
// one falls close enough.
func clip(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndexByte(cut, '\n'); idx > max/2 {
		cut = cut[:idx]
	}
	return cut
}
