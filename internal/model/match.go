package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// MatchesAny reports whether the bill's title or summary contains any of the
// interest tags, ignoring case. Blank tags never match.
func (b BillRecord) MatchesAny(interests []string) bool {
	if len(interests) == 0 {
		return false
	}
	fold := cases.Fold()
	title := fold.String(b.Title)
	summary := fold.String(b.Summary)
	for _, interest := range interests {
		tag := strings.TrimSpace(interest)
		if tag == "" {
			continue
		}
		tag = fold.String(tag)
		if strings.Contains(title, tag) || strings.Contains(summary, tag) {
			return true
		}
	}
	return false
}
