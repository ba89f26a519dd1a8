// Package extract turns free-form model output and saved web pages into the
// structured text the rest of the pipeline consumes.
package extract

import (
	"strings"

	"github.com/govbrief/govbrief/internal/model"
)

// Bullet markers recognized at the start of a line. Includes the mis-decoded
// variants that show up when UTF-8 bullets pass through a cp1252 round trip;
// an unrecognized glyph is not an error, the line just falls through to the
// verbatim path.
var bulletMarkers = []string{
	"•",     // •
	"–",     // –
	"·",     // ·
	"●",     // ●
	"◦",     // ◦
	"‣",     // ‣
	"-",
	"*",
	"â€¢",     // • through cp1252
	"Ã¢â‚¬Â¢", // • double mis-decoded
	"ï¿½",     // replacement character through cp1252
	"�",       // replacement character
}

// Stats records how each point was recognized, so callers can tell a clean
// parse from the verbatim-line fallback.
type Stats struct {
	Numbered   int // lines with a leading digit-dot marker
	Bulleted   int // lines with a recognized bullet glyph
	Verbatim   int // lines kept as-is, no marker recognized
	Duplicates int // candidates dropped as case-insensitive repeats
}

// Points parses numbered, bulleted, or plain-prose model output into an
// ordered list of discrete points. Blank lines are skipped, markers are
// stripped, and duplicates are dropped case-insensitively with the first
// occurrence (and its casing) winning.
func Points(text string) ([]model.Point, Stats) {
	var (
		points []model.Point
		stats  Stats
		seen   = make(map[string]bool)
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		candidate, kind := stripMarker(line)
		if candidate == "" {
			continue
		}

		key := strings.ToLower(candidate)
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true

		switch kind {
		case markerNumber:
			stats.Numbered++
		case markerBullet:
			stats.Bulleted++
		default:
			stats.Verbatim++
		}
		points = append(points, model.Point(candidate))
	}

	return points, stats
}

type markerKind int

const (
	markerNone markerKind = iota
	markerNumber
	markerBullet
)

// stripMarker removes a leading list marker from a trimmed line and reports
// which kind it found. A line without a recognized marker is its own
// candidate verbatim.
func stripMarker(line string) (string, markerKind) {
	if rest, ok := stripNumber(line); ok {
		return strings.TrimSpace(rest), markerNumber
	}
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), markerBullet
		}
	}
	return line, markerNone
}

// stripNumber matches a digit-dot marker where the digits fit in the first
// two characters ("1." through "99.").
func stripNumber(line string) (string, bool) {
	i := 0
	for i < len(line) && i < 2 && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return "", false
	}
	return line[i+1:], true
}
