package pipeline

import (
	"strings"

	"github.com/govbrief/govbrief/internal/model"
)

// Verdict phrasings recognized in critique output. The critique prompt asks
// for a fixed format, but the model's phrasing is not contractual, so
// matching is loose: case-insensitive substrings, checked in three tiers
// because the tiers overlap ("needs_improvement: false" contains
// "needs_improvement"; "not satisfactory" contains "satisfactory").
var (
	strongSatisfiedForms = []string{
		"needs_improvement: false",
		"needs improvement: false",
		"no improvement",
	}
	unsatisfiedForms = []string{
		"needs_improvement",
		"needs improvement",
		"needs work",
		"not ready",
		"not satisfactory",
		"unsatisfactory",
	}
	weakSatisfiedForms = []string{
		"satisfactory",
		"approved",
	}
)

// parseVerdict reads a critique response into a typed verdict. A nonempty
// response matching no recognized form is treated as "needs improvement"
// with the whole text as feedback and Matched=false, so the fallback stays
// observable.
func parseVerdict(text string) model.ReviewVerdict {
	lines := strings.Split(text, "\n")

	verdictLine := -1
	needsImprovement := false
	for i, line := range lines {
		l := strings.ToLower(strings.TrimSpace(line))
		if l == "" {
			continue
		}
		if containsAny(l, strongSatisfiedForms) {
			needsImprovement = false
			verdictLine = i
			break
		}
		if containsAny(l, unsatisfiedForms) {
			needsImprovement = true
			verdictLine = i
			break
		}
		if containsAny(l, weakSatisfiedForms) {
			needsImprovement = false
			verdictLine = i
			break
		}
	}

	if verdictLine == -1 {
		return model.ReviewVerdict{
			NeedsImprovement: true,
			Feedback:         strings.TrimSpace(text),
			Matched:          false,
		}
	}

	return model.ReviewVerdict{
		NeedsImprovement: needsImprovement,
		Feedback:         extractFeedback(lines, verdictLine),
		Matched:          true,
	}
}

// extractFeedback pulls the feedback section: lines after a "feedback"
// heading when one exists, otherwise every line except the verdict line.
func extractFeedback(lines []string, verdictLine int) string {
	for i, line := range lines {
		l := strings.ToLower(line)
		idx := strings.Index(l, "feedback")
		if idx == -1 {
			continue
		}

		var parts []string
		sameLine := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line[idx+len("feedback"):]), ":"))
		if sameLine != "" {
			parts = append(parts, sameLine)
		}
		if rest := strings.TrimSpace(strings.Join(lines[i+1:], "\n")); rest != "" {
			parts = append(parts, rest)
		}
		return strings.Join(parts, "\n")
	}

	var kept []string
	for i, line := range lines {
		if i == verdictLine {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func containsAny(s string, forms []string) bool {
	for _, form := range forms {
		if strings.Contains(s, form) {
			return true
		}
	}
	return false
}
