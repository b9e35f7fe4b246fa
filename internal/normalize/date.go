// Package normalize holds the per-record corrections every adapter applies:
// date formatting, URL repair, sentinel defaults, keyword filtering and
// offset pagination.
package normalize

import (
	"strings"
	"time"

	"github.com/law-makers/jobhub/pkg/models"
)

// DisplayLayout is the single human format all parsed dates are rendered in
const DisplayLayout = "02 Jan 2006, 03:04 PM"

// isoLayouts are tried in order after a trailing Z has been turned into +00:00
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// dayLayouts cover the "DD Mon YYYY" listing format
var dayLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
}

// relativeMarkers identify strings like "2 days ago" or "Just now"
var relativeMarkers = []string{"day", "hour", "minute", "Just"}

// FormatDate turns a posted-date string from any source into one display
// form. It never fails: unparseable input is returned trimmed, and empty
// input becomes "Unknown".
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || s == models.Unknown {
		return models.Unknown
	}

	if t, ok := parseISO(s); ok {
		return t.Format(DisplayLayout)
	}

	for _, marker := range relativeMarkers {
		if strings.Contains(s, marker) {
			return s
		}
	}

	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DisplayLayout)
		}
	}

	return s
}

func parseISO(s string) (time.Time, bool) {
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
