// Package note defines the note record, its JSON wire form, and the
// identifier and clock seams used when notes are created.
package note

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the timestamp form written to the slot. It matches what a
// browser produces for JSON.stringify(new Date()): UTC, millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z"

// ErrDateOutOfRange is returned for timestamps outside years 0000-9999,
// which DateLayout cannot represent in a form ParseDate accepts.
var ErrDateOutOfRange = errors.New("date outside years 0000-9999")

// Note is a single user-authored text record. Notes are never mutated after
// creation.
type Note struct {
	ID      string
	Date    time.Time
	Content string
}

// wireNote is the JSON shape of a Note.
type wireNote struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// MarshalJSON writes the note with its date in DateLayout.
func (n Note) MarshalJSON() ([]byte, error) {
	if err := CheckDate(n.Date); err != nil {
		return nil, fmt.Errorf("note %q: %w", n.ID, err)
	}
	return json.Marshal(wireNote{
		ID:      n.ID,
		Date:    FormatDate(n.Date),
		Content: n.Content,
	})
}

// UnmarshalJSON accepts any RFC 3339 date, not only DateLayout.
func (n *Note) UnmarshalJSON(data []byte) error {
	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	date, err := ParseDate(w.Date)
	if err != nil {
		return fmt.Errorf("note %q: %w", w.ID, err)
	}
	n.ID = w.ID
	n.Date = date
	n.Content = w.Content
	return nil
}

// CheckDate reports whether t survives a round trip through DateLayout.
func CheckDate(t time.Time) error {
	if y := t.UTC().Year(); y < 0 || y > 9999 {
		return fmt.Errorf("%w: %d", ErrDateOutOfRange, y)
	}
	return nil
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses an RFC 3339 timestamp and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return t.UTC(), nil
}
