package extract

import "strings"

// Collapse trims the string and collapses every run of whitespace
// (including newlines from block layout) into a single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitList splits a comma- or semicolon-delimited text block into
// cleaned items, dropping empties.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	items := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if item := Collapse(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// CutPrefixFold removes a case-insensitive prefix and any whitespace
// after it. The second return reports whether the prefix was present.
func CutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}
