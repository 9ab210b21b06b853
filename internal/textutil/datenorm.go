package textutil

import (
	"regexp"
	"strings"
	"time"
)

// ID scanners commonly emit dates as MM-DD-YYYY.
var usDashDate = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// dateLayouts covers the formats seen across scan exports and contact stores.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate parses a heterogeneous date representation and returns the
// canonical YYYY-MM-DD form. ok is false when the value cannot be parsed;
// callers must not compare two unparseable values as equal.
func NormalizeDate(raw string) (normalized string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if usDashDate.MatchString(trimmed) {
		if parsed, err := time.Parse("01-02-2006", trimmed); err == nil {
			return parsed.Format("2006-01-02"), true
		}
		return "", false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}
	return "", false
}
