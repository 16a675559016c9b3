// Package filter derives the visible subset of notes for a search query.
package filter

import (
	"strings"

	"github.com/marcus/notecards/internal/note"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Filter returns the notes whose content contains query, ignoring case, in
// their original order. An empty query returns notes unchanged.
func Filter(notes []note.Note, query string) []note.Note {
	if query == "" {
		return notes
	}
	// A Caser carries state and is not safe for concurrent use.
	caser := cases.Lower(language.Und)
	needle := fold(caser, query)

	matches := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(fold(caser, n.Content), needle) {
			matches = append(matches, n)
		}
	}
	return matches
}

func fold(caser cases.Caser, s string) string {
	return caser.String(norm.NFC.String(s))
}
