package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultDateLayout formats creation dates the way the he-IL locale does
// (day.month.year without zero padding).
const DefaultDateLayout = "2.1.2006"

// dateLayouts are tried in order before falling back to dateparse.
// Day-first layouts come before anything ambiguous.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2/1/2006",
	"2.1.2006",
	"2-1-2006",
}

// ParseDate parses a stored date into a calendar date.
// Slash, dot and dash separated numeric dates are read day first.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("parse date: empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a creation date. An empty layout means DefaultDateLayout.
func FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}
