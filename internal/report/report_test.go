package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/govbrief/govbrief/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		Subject:      "Jane Smith",
		Organization: "Department of Homeland Security",
		SubUnit:      "U.S. Citizenship and Immigration Services",
		GeneratedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Points: []model.Point{
			"Leads the identity-verification modernization program (dhs.gov).",
			"Awarded ACME Corp $1,250,000 for cloud migration in January (usaspending.gov).",
		},
		SpendingAnalysis: "Cloud services dominate recent awards.",
		Sources:          []string{"https://dhs.gov/bio", "https://fcw.example/article"},
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := RenderMarkdown(sampleReport())

	for _, want := range []string{
		"# Pre-Call Briefing: Jane Smith",
		"**Organization:** Department of Homeland Security",
		"**Sub-unit:** U.S. Citizenship and Immigration Services",
		"1. Leads the identity-verification modernization program (dhs.gov).",
		"2. Awarded ACME Corp $1,250,000",
		"## Agency Spending Analysis",
		"Cloud services dominate recent awards.",
		"## Sources Consulted",
		"- https://dhs.gov/bio",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
}

func TestRenderMarkdown_OmitsEmptySections(t *testing.T) {
	r := sampleReport()
	r.SubUnit = ""
	r.SpendingAnalysis = ""
	r.Sources = nil

	got := RenderMarkdown(r)
	for _, absent := range []string{"Sub-unit", "Spending Analysis", "Sources Consulted"} {
		if strings.Contains(got, absent) {
			t.Errorf("markdown should omit %q when empty:\n%s", absent, got)
		}
	}
}

func TestRenderMarkdown_NoPoints(t *testing.T) {
	r := sampleReport()
	r.Points = nil

	got := RenderMarkdown(r)
	if !strings.Contains(got, "No talking points were produced") {
		t.Errorf("expected empty-points placeholder:\n%s", got)
	}
}

func TestEmitter_Emit(t *testing.T) {
	dir := t.TempDir()
	emitter := NewEmitter(model.OutputConfig{Dir: dir, Markdown: true, PDF: true})

	paths, err := emitter.Emit(sampleReport())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 artifacts, got %v", paths)
	}

	md, err := os.ReadFile(filepath.Join(dir, "jane-smith-briefing.md"))
	if err != nil {
		t.Fatalf("read markdown artifact: %v", err)
	}
	if !strings.Contains(string(md), "Pre-Call Briefing: Jane Smith") {
		t.Errorf("markdown artifact content wrong:\n%s", md)
	}

	pdfInfo, err := os.Stat(filepath.Join(dir, "jane-smith-briefing.pdf"))
	if err != nil {
		t.Fatalf("stat PDF artifact: %v", err)
	}
	if pdfInfo.Size() == 0 {
		t.Error("PDF artifact is empty")
	}
}

func TestEmitter_MarkdownOnly(t *testing.T) {
	dir := t.TempDir()
	emitter := NewEmitter(model.OutputConfig{Dir: dir, Markdown: true})

	paths, err := emitter.Emit(sampleReport())
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(paths) != 1 || !strings.HasSuffix(paths[0], ".md") {
		t.Errorf("expected only the markdown artifact, got %v", paths)
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Jane Smith", "jane-smith"},
		{"Jane  Smith-O'Neil", "jane-smith-o-neil"},
		{"  Trailing punctuation! ", "trailing-punctuation"},
		{"", "report"},
	}
	for _, tc := range cases {
		if got := slug(tc.in); got != tc.want {
			t.Errorf("slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
