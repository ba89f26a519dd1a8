package util

import (
	"regexp"
	"strings"
)

// Patterns for web artifacts that survive tag stripping: leftover JSON blobs,
// inline scripts, navigation pipe runs. Applied in order.
var artifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)\{.*?\}`),              // JSON blocks
	regexp.MustCompile(`\|+`),                      // repeated pipes
	regexp.MustCompile(`(?s)\bfunction\b.*?\{.*?\}`), // JS function bodies
	regexp.MustCompile(`document\..*?;`),           // inline document.* calls
	regexp.MustCompile(`window\.\S*`),              // window.* references
	regexp.MustCompile(`var\s+[^=\n]*=.*?;`),       // JS variable declarations
}

var (
	longWhitespace = regexp.MustCompile(`\s{2,}`)
	multiNewline   = regexp.MustCompile(`\n{2,}`)
)

// CleanArtifacts scrubs text extracted from web pages: JSON and script
// leftovers removed, whitespace collapsed, every line trimmed, leading and
// trailing blank lines dropped.
func CleanArtifacts(text string) string {
	for _, p := range artifactPatterns {
		text = p.ReplaceAllString(text, "")
	}

	text = longWhitespace.ReplaceAllString(text, "\n")
	text = multiNewline.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
