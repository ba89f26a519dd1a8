// Package report renders the final briefing into deliverable artifacts.
// Rendering is the last stage and strictly best-effort: a failed artifact is
// logged and reported, but the research it would have carried is already
// printed by the CLI and stays valid.
package report

import (
	"fmt"
	"strings"

	"github.com/govbrief/govbrief/internal/model"
)

// RenderMarkdown produces the Markdown artifact body: title block, numbered
// points, the spending analysis when present, and the consulted sources.
func RenderMarkdown(r *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Pre-Call Briefing: %s\n\n", r.Subject)
	fmt.Fprintf(&b, "**Organization:** %s\n\n", r.Organization)
	if r.SubUnit != "" {
		fmt.Fprintf(&b, "**Sub-unit:** %s\n\n", r.SubUnit)
	}
	fmt.Fprintf(&b, "**Generated:** %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	b.WriteString("## Talking Points\n\n")
	if len(r.Points) == 0 {
		b.WriteString("No talking points were produced for this query.\n\n")
	}
	for i, point := range r.Points {
		fmt.Fprintf(&b, "%d. %s\n", i+1, string(point))
	}
	if len(r.Points) > 0 {
		b.WriteString("\n")
	}

	if r.SpendingAnalysis != "" {
		b.WriteString("## Agency Spending Analysis\n\n")
		b.WriteString(strings.TrimSpace(r.SpendingAnalysis))
		b.WriteString("\n\n")
	}

	if len(r.Sources) > 0 {
		b.WriteString("## Sources Consulted\n\n")
		for _, src := range r.Sources {
			fmt.Fprintf(&b, "- %s\n", src)
		}
		b.WriteString("\n")
	}

	return b.String()
}
