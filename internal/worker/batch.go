package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/govbrief/govbrief/internal/extract"
)

// skillsNumberPattern pulls the page number out of saved skills-page
// filenames like "Jane Smith Skills-3.html".
var skillsNumberPattern = regexp.MustCompile(`Skills.*?-?(\d+)`)

// ProfileJob converts one saved LinkedIn HTML dump into its plain-text
// slice. Jobs are independent, so a directory of dumps runs through the
// pool concurrently.
type ProfileJob struct {
	Path      string // source HTML file
	OutputDir string
}

// ProfileResult reports one conversion.
type ProfileResult struct {
	Source string
	Output string // path written, empty on failure
	Err    error
}

func (r *ProfileResult) GetError() error { return r.Err }

// Execute reads the dump, extracts the profile slice, and writes it under
// the output name derived from the source filename.
func (j *ProfileJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ProfileResult{Source: j.Path, Err: err}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &ProfileResult{Source: j.Path, Err: fmt.Errorf("read dump: %w", err)}
	}

	text := extract.ProfileText(string(data))
	if text == "" {
		return &ProfileResult{Source: j.Path, Err: fmt.Errorf("no profile markers in %s", filepath.Base(j.Path))}
	}

	out := filepath.Join(j.OutputDir, outputName(j.Path))
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return &ProfileResult{Source: j.Path, Err: fmt.Errorf("write slice: %w", err)}
	}
	return &ProfileResult{Source: j.Path, Output: out}
}

// outputName maps a dump filename to its text-slice name: skills pages
// become skills-N.txt (skills.txt without a page number), everything else
// is the profile page.
func outputName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !strings.Contains(base, "Skills") {
		return "Profile.txt"
	}
	if m := skillsNumberPattern.FindStringSubmatch(base); m != nil {
		return "skills-" + m[1] + ".txt"
	}
	return "skills.txt"
}

// ProcessProfiles converts every .html dump in inputDir concurrently and
// returns one result per file. A missing or empty input directory is an
// error; individual conversion failures are carried in the results.
func ProcessProfiles(ctx context.Context, inputDir, outputDir string, workers int) ([]*ProfileResult, error) {
	files, err := filepath.Glob(filepath.Join(inputDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no HTML files in %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	pool := NewPool(workers)
	pool.Start()
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			pool.Shutdown()
			return nil, err
		}
		pool.Submit(&ProfileJob{Path: f, OutputDir: outputDir})
	}

	var out []*ProfileResult
	for _, res := range pool.Wait() {
		if pr, ok := res.(*ProfileResult); ok {
			out = append(out, pr)
		}
	}
	return out, nil
}
