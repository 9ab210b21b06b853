package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase normalizes a name to proper case. Scan sources typically yield
// all-caps text while contact stores hold proper case, so both sides are
// folded through this before querying. A Caser is stateful and not safe for
// concurrent use, so one is built per call.
func TitleCase(name string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.TrimSpace(name)))
}

// NameTokens splits a name into whitespace-separated tokens.
func NameTokens(name string) []string {
	return strings.Fields(strings.TrimSpace(name))
}

// PrefixFold reports whether either string is a case-insensitive prefix of
// the other. Catches nickname-style partials such as "Rob" against "Robert".
func PrefixFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.HasPrefix(la, lb) || strings.HasPrefix(lb, la)
}
