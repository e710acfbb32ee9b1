// Package export renders prescriptions as paginated plain-text
// documents and resolves history selections back to stored records.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/doctor-dialogue-server/internal/domain"
)

// linesPerPage is the fixed page height of the exported document.
const linesPerPage = 50

// selectionTimestamp matches the bracketed stamp a history entry is
// rendered with. The day may be one or two digits: legacy rows repaired
// from the old day bug kept their original width.
var selectionTimestamp = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{1,2} \d{2}:\d{2}:\d{2})\]`)

// Page is one page of the rendered document.
type Page struct {
	Number int
	Lines  []string
}

// Paginate splits text into fixed-height pages.
func Paginate(text string) []Page {
	lines := strings.Split(text, "\n")

	var pages []Page
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, Page{
			Number: len(pages) + 1,
			Lines:  lines[start:end],
		})
	}
	if len(pages) == 0 {
		pages = []Page{{Number: 1}}
	}
	return pages
}

// Render joins pages into a single document with a footer per page and
// form-feed page breaks.
func Render(pages []Page) string {
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\f")
		}
		for _, line := range page.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n-- Page %d of %d --\n", page.Number, len(pages))
	}
	return b.String()
}

// Filename builds the download name for a prescription export:
// prescription_<user>_<YYYYMMDD_HHMMSS>.txt.
func Filename(username, timestamp string) string {
	// The lenient layout also accepts the single-digit day of repaired
	// legacy rows.
	stamp := timestamp
	if t, err := time.Parse("2006-1-2 15:04:05", timestamp); err == nil {
		stamp = t.Format("20060102_150405")
	} else {
		stamp = strings.NewReplacer("-", "", ":", "", " ", "_").Replace(timestamp)
	}
	return fmt.Sprintf("prescription_%s_%s.txt", username, stamp)
}

// TimestampFromSelection extracts the bracketed timestamp from a
// history selection. A selection without one is a user error, reported
// as ErrNoSelectionTimestamp.
func TimestampFromSelection(text string) (string, error) {
	match := selectionTimestamp.FindStringSubmatch(text)
	if match == nil {
		return "", domain.ErrNoSelectionTimestamp
	}
	return match[1], nil
}
