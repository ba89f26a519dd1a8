package report

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/govbrief/govbrief/internal/model"
)

// writePDF renders the report as a single-column A4 document. The cp1252
// translator keeps non-ASCII names from rendering as garbage; glyphs outside
// cp1252 degrade to their closest representable form.
func writePDF(r *model.Report, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 20, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(fmt.Sprintf("Pre-Call Briefing: %s", r.Subject)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	org := r.Organization
	if r.SubUnit != "" {
		org += " - " + r.SubUnit
	}
	pdf.MultiCell(0, 6, tr(org), "", "L", false)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr("Generated "+r.GeneratedAt.Format("2006-01-02 15:04 MST")), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, "Talking Points", "", "L", false)
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 11)
	for i, point := range r.Points {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, string(point))), "", "L", false)
		pdf.Ln(1)
	}
	if len(r.Points) == 0 {
		pdf.MultiCell(0, 6, "No talking points were produced for this query.", "", "L", false)
	}

	if r.SpendingAnalysis != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, "Agency Spending Analysis", "", "L", false)
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range strings.Split(strings.TrimSpace(r.SpendingAnalysis), "\n") {
			pdf.MultiCell(0, 5, tr(line), "", "L", false)
		}
	}

	if len(r.Sources) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, "Sources Consulted", "", "L", false)
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 9)
		for _, src := range r.Sources {
			pdf.MultiCell(0, 5, tr("- "+src), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}
