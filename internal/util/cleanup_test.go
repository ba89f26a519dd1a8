package util

import (
	"strings"
	"testing"
)

func TestCleanArtifacts_RemovesJSONBlocks(t *testing.T) {
	input := `Director of Procurement {"track":"pageview","id":12345} since 2019`
	got := CleanArtifacts(input)

	if strings.Contains(got, "pageview") {
		t.Errorf("expected JSON block removed, got %q", got)
	}
	if !strings.Contains(got, "Director of Procurement") {
		t.Errorf("expected surrounding text preserved, got %q", got)
	}
}

func TestCleanArtifacts_RemovesInlineJS(t *testing.T) {
	input := "Profile heading\ndocument.write(banner);\nwindow.dataLayer\nvar tracker = init();\nReal content"
	got := CleanArtifacts(input)

	for _, artifact := range []string{"document.", "window.", "var tracker"} {
		if strings.Contains(got, artifact) {
			t.Errorf("expected %q removed, got %q", artifact, got)
		}
	}
	if !strings.Contains(got, "Real content") {
		t.Errorf("expected content preserved, got %q", got)
	}
}

func TestCleanArtifacts_NormalizesWhitespace(t *testing.T) {
	input := "  first   line  \n\n\n\n  second line  "
	got := CleanArtifacts(input)

	if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
		t.Errorf("expected no surrounding blank lines, got %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if line != strings.TrimSpace(line) {
			t.Errorf("expected trimmed lines, got %q", line)
		}
	}
}

func TestCleanArtifacts_RemovesPipeRuns(t *testing.T) {
	got := CleanArtifacts("Home ||| About ||| Contact")
	if strings.Contains(got, "|") {
		t.Errorf("expected pipes removed, got %q", got)
	}
}

func TestCleanArtifacts_Empty(t *testing.T) {
	if got := CleanArtifacts(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
