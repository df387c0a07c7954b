// ABOUTME: Date normalization for the mixed date spellings stored across bases
// ABOUTME: Coerces ISO, DD/MM/YYYY, and free-form dates into YYYY-MM-DD
package airtable

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ddmmyyyy = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// parseLayouts are tried in order when the input is neither ISO-prefixed nor
// DD/MM/YYYY. RFC3339 first, since datetime values are the common case.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	time.RFC1123,
	time.RFC1123Z,
}

// NormalizeDate coerces a date string into canonical YYYY-MM-DD form. The
// second return is false when the input carries no usable date; callers must
// omit the field rather than send a malformed value, so "absent" is a
// legitimate outcome here, never an error.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	// Already ISO: a date or datetime with dashes at positions 4 and 7.
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		return s[:10], true
	}

	if m := ddmmyyyy.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), true
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}
