package extract

import (
	"strings"

	"github.com/govbrief/govbrief/internal/util"
)

// Markers bounding the useful section of a saved LinkedIn profile page. The
// profile body sits between the first two "Status is" lines; when only one
// appears, the recommendations block marks the end instead.
const (
	profileStartMarker = "Status is"
	profileEndMarker   = "More profiles for you"
)

// ProfileText converts a saved LinkedIn HTML dump into the plain-text slice
// the extraction adapters consume. Returns "" when the page contains none of
// the expected markers.
func ProfileText(htmlContent string) string {
	text := util.CleanArtifacts(PageText(htmlContent))
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	start, end := -1, -1

	for i, line := range lines {
		if strings.Contains(line, profileStartMarker) {
			if start == -1 {
				start = i
				continue
			}
			end = i
			break
		}
		if end == -1 && strings.Contains(line, profileEndMarker) {
			end = i
			break
		}
	}

	if start == -1 || end == -1 || start >= end {
		return ""
	}
	return strings.Join(lines[start:end+1], "\n")
}
