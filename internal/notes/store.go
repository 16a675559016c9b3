// Package notes holds the note collection in memory and mirrors it to a
// persistent slot.
package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/marcus/notecards/internal/note"
	"github.com/marcus/notecards/internal/slot"
)

// DefaultKey is the slot that holds the collection.
const DefaultKey = "notes"

// maxIDAttempts bounds retries when the generator repeats an identifier.
const maxIDAttempts = 3

var (
	// ErrEmptyContent is returned by Create for empty content.
	ErrEmptyContent = errors.New("note content is empty")
	// ErrDuplicateID is returned when no unused identifier could be generated.
	ErrDuplicateID = errors.New("could not generate a unique note id")
)

// Store is the owner of the note collection. The collection is ordered
// newest first and its identifiers are unique.
type Store struct {
	slot   slot.Slot
	key    string
	ids    note.IDGenerator
	clock  note.Clock
	logger *slog.Logger

	mu    sync.RWMutex
	notes []note.Note
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the slot key. Defaults to DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithIDGenerator sets the identifier source. Defaults to random UUIDs.
func WithIDGenerator(g note.IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the time source for creation timestamps.
func WithClock(c note.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store over sl. The collection starts empty; call Load to
// hydrate it.
func New(sl slot.Slot, opts ...Option) *Store {
	s := &Store{
		slot:  sl,
		key:   DefaultKey,
		ids:   note.UUIDGenerator{},
		clock: note.SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Open creates a Store and loads it.
func Open(sl slot.Slot, opts ...Option) *Store {
	s := New(sl, opts...)
	s.Load()
	return s
}

// Load replaces the in-memory collection with the slot's contents. An absent
// slot, a read failure, or malformed data all yield an empty collection.
// It returns the number of notes loaded.
//
// The lock is held across the read so a Create cannot land between reading
// the slot and replacing the collection.
func (s *Store) Load() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = s.read()
	return len(s.notes)
}

// Reload re-reads the slot after another writer changed it.
func (s *Store) Reload() int {
	n := s.Load()
	s.logger.Debug("notes: reloaded", "key", s.key, "count", n)
	return n
}

// read decodes the slot. Callers hold s.mu.
func (s *Store) read() []note.Note {
	data, ok, err := s.slot.Get(s.key)
	if err != nil {
		s.logger.Warn("notes: read slot failed", "key", s.key, "error", err)
		return []note.Note{}
	}
	if !ok {
		return []note.Note{}
	}
	decoded, err := note.DecodeCollection(data)
	if err != nil {
		s.logger.Warn("notes: stored notes are malformed, starting empty", "key", s.key, "error", err)
		return []note.Note{}
	}
	return dedupe(decoded, s.logger)
}

// dedupe keeps the first occurrence of each identifier.
func dedupe(in []note.Note, logger *slog.Logger) []note.Note {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, n := range in {
		if _, dup := seen[n.ID]; dup {
			logger.Warn("notes: dropping duplicate id", "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Create adds a note with content as the new head of the collection and
// rewrites the slot with the whole collection. If the write fails the note
// is kept in memory and the error is returned alongside it.
func (s *Store) Create(content string) (note.Note, error) {
	if content == "" {
		return note.Note{}, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.freshID()
	if err != nil {
		return note.Note{}, err
	}
	date := s.clock.Now().UTC().Truncate(time.Millisecond)
	if err := note.CheckDate(date); err != nil {
		return note.Note{}, fmt.Errorf("stamp note: %w", err)
	}
	n := note.Note{
		ID:      id,
		Date:    date,
		Content: content,
	}

	updated := make([]note.Note, 0, len(s.notes)+1)
	updated = append(updated, n)
	updated = append(updated, s.notes...)
	s.notes = updated

	data, err := note.EncodeCollection(updated)
	if err != nil {
		return n, err
	}
	if err := s.slot.Set(s.key, data); err != nil {
		s.logger.Error("notes: persist failed", "key", s.key, "error", err)
		return n, fmt.Errorf("persist notes: %w", err)
	}

	s.logger.Debug("notes: created", "id", n.ID, "count", len(updated))
	return n, nil
}

// freshID returns an identifier not used by any note. Callers hold s.mu.
func (s *Store) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.ids.NewID()
		if err != nil {
			return "", fmt.Errorf("generate ID: %w", err)
		}
		if !s.hasID(id) {
			return id, nil
		}
		s.logger.Warn("notes: generated id already in use", "id", id)
	}
	return "", ErrDuplicateID
}

func (s *Store) hasID(id string) bool {
	return slices.ContainsFunc(s.notes, func(n note.Note) bool { return n.ID == id })
}

// Notes returns a copy of the collection, newest first.
func (s *Store) Notes() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Key returns the slot key the store persists to.
func (s *Store) Key() string { return s.key }
