package report

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/govbrief/govbrief/internal/model"
)

// Emitter writes the enabled artifacts for a report.
type Emitter struct {
	cfg    model.OutputConfig
	logger *log.Logger
}

func NewEmitter(cfg model.OutputConfig) *Emitter {
	return &Emitter{
		cfg:    cfg,
		logger: log.New(os.Stderr, "report: ", 0),
	}
}

// Emit renders every enabled artifact and returns the paths written. A
// failed artifact is logged and folded into the returned error, but the
// remaining artifacts are still attempted: one bad renderer must not take
// the other's output with it.
func (e *Emitter) Emit(r *model.Report) ([]string, error) {
	if err := os.MkdirAll(e.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	base := filepath.Join(e.cfg.Dir, slug(r.Subject)+"-briefing")
	var paths []string
	var errs []error

	if e.cfg.Markdown {
		path := base + ".md"
		if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0o644); err != nil {
			e.logger.Printf("Warning: markdown artifact failed: %v", err)
			errs = append(errs, fmt.Errorf("write markdown: %w", err))
		} else {
			paths = append(paths, path)
		}
	}

	if e.cfg.PDF {
		path := base + ".pdf"
		if err := writePDF(r, path); err != nil {
			e.logger.Printf("Warning: PDF artifact failed: %v", err)
			errs = append(errs, err)
		} else {
			paths = append(paths, path)
		}
	}

	return paths, errors.Join(errs...)
}

// slug converts a subject name into a filesystem-safe file stem:
// "Jane Smith-O'Neil" becomes "jane-smith-o-neil".
func slug(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "report"
	}
	return out
}
