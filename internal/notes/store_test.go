package notes

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcus/notecards/internal/note"
	"github.com/marcus/notecards/internal/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// sequenceIDs returns "id-1", "id-2", ...
func sequenceIDs() note.IDGenerator {
	n := 0
	return note.IDGeneratorFunc(func() (string, error) {
		n++
		return fmt.Sprintf("id-%d", n), nil
	})
}

// steppingClock advances one minute per call.
func steppingClock(start time.Time) note.Clock {
	t := start
	return note.ClockFunc(func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	})
}

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t testing.TB, sl slot.Slot) *Store {
	t.Helper()
	return Open(sl,
		WithIDGenerator(sequenceIDs()),
		WithClock(steppingClock(epoch)),
		WithLogger(quiet),
	)
}

func contents(notes []note.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Content
	}
	return out
}

// failingSlot returns fixed errors from Get and Set.
type failingSlot struct {
	getErr, setErr error
	value          []byte
}

func (f *failingSlot) Get(string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.value, f.value != nil, nil
}

func (f *failingSlot) Set(_ string, v []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value = v
	return nil
}

func (f *failingSlot) Close() error { return nil }

func TestCreate_NewestFirst(t *testing.T) {
	s := newTestStore(t, slot.NewMemorySlot())
	require.Equal(t, 0, s.Len())

	first, err := s.Create("Buy milk")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, contents(s.Notes()))
	assert.Equal(t, "id-1", first.ID)
	assert.Equal(t, epoch, first.Date)

	_, err = s.Create("Call mom")
	require.NoError(t, err)
	assert.Equal(t, []string{"Call mom", "Buy milk"}, contents(s.Notes()))
}

func TestCreate_PersistsFullSnapshot(t *testing.T) {
	sl := slot.NewMemorySlot()
	s := newTestStore(t, sl)
	_, err := s.Create("Buy milk")
	require.NoError(t, err)
	_, err = s.Create("Call mom")
	require.NoError(t, err)

	data, ok, err := sl.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":"id-2","date":"2024-03-01T09:01:00.000Z","content":"Call mom"},
		{"id":"id-1","date":"2024-03-01T09:00:00.000Z","content":"Buy milk"}
	]`, string(data))
}

func TestCreate_EmptyContentRejected(t *testing.T) {
	sl := slot.NewMemorySlot()
	s := newTestStore(t, sl)

	_, err := s.Create("")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, 0, s.Len())

	_, ok, err := sl.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok, "rejected create must not write the slot")
}

func TestCreate_TruncatesToMilliseconds(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 123_456_789, time.FixedZone("X", 3600))
	s := Open(slot.NewMemorySlot(),
		WithClock(note.ClockFunc(func() time.Time { return at })),
		WithLogger(quiet),
	)
	n, err := s.Create("x")
	require.NoError(t, err)
	assert.Equal(t, 123_000_000, n.Date.Nanosecond())
	assert.Equal(t, time.UTC, n.Date.Location())
}

func TestCreate_RetriesDuplicateIDs(t *testing.T) {
	ids := []string{"a", "a", "b"}
	gen := note.IDGeneratorFunc(func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	})
	s := Open(slot.NewMemorySlot(), WithIDGenerator(gen), WithLogger(quiet))

	n1, err := s.Create("one")
	require.NoError(t, err)
	n2, err := s.Create("two")
	require.NoError(t, err)
	assert.Equal(t, "a", n1.ID)
	assert.Equal(t, "b", n2.ID)
}

func TestCreate_GivesUpOnConstantIDs(t *testing.T) {
	gen := note.IDGeneratorFunc(func() (string, error) { return "same", nil })
	s := Open(slot.NewMemorySlot(), WithIDGenerator(gen), WithLogger(quiet))

	_, err := s.Create("one")
	require.NoError(t, err)
	_, err = s.Create("two")
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, s.Len())
}

func TestCreate_GeneratorError(t *testing.T) {
	boom := errors.New("no entropy")
	gen := note.IDGeneratorFunc(func() (string, error) { return "", boom })
	s := Open(slot.NewMemorySlot(), WithIDGenerator(gen), WithLogger(quiet))

	_, err := s.Create("x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Len())
}

func TestCreate_RejectsDateOutsideWireRange(t *testing.T) {
	sl := slot.NewMemorySlot()
	s := newTestStore(t, sl)
	_, err := s.Create("Buy milk")
	require.NoError(t, err)

	farFuture := note.ClockFunc(func() time.Time { return time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC) })
	far := Open(sl, WithClock(farFuture), WithLogger(quiet))
	_, err = far.Create("Call mom")
	assert.ErrorIs(t, err, note.ErrDateOutOfRange)
	assert.Equal(t, []string{"Buy milk"}, contents(far.Notes()))

	// The slot still decodes, so nothing already stored is lost.
	reopened := newTestStore(t, sl)
	assert.Equal(t, []string{"Buy milk"}, contents(reopened.Notes()))
}

func TestCreate_PersistFailureKeepsNoteInMemory(t *testing.T) {
	diskFull := errors.New("disk full")
	s := Open(&failingSlot{setErr: diskFull}, WithLogger(quiet))

	n, err := s.Create("Buy milk")
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, "Buy milk", n.Content)
	assert.Equal(t, []string{"Buy milk"}, contents(s.Notes()))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		slot  slot.Slot
		want  []string
		setup func(slot.Slot)
	}{
		{
			name: "absent slot",
			slot: slot.NewMemorySlot(),
			want: []string{},
		},
		{
			name: "malformed json",
			slot: slot.NewMemorySlot(),
			setup: func(sl slot.Slot) {
				_ = sl.Set(DefaultKey, []byte(`[{"id": "a", "content": `))
			},
			want: []string{},
		},
		{
			name: "wrong shape",
			slot: slot.NewMemorySlot(),
			setup: func(sl slot.Slot) {
				_ = sl.Set(DefaultKey, []byte(`{"notes": []}`))
			},
			want: []string{},
		},
		{
			name: "bad date",
			slot: slot.NewMemorySlot(),
			setup: func(sl slot.Slot) {
				_ = sl.Set(DefaultKey, []byte(`[{"id":"a","date":"soon","content":"x"}]`))
			},
			want: []string{},
		},
		{
			name: "read failure",
			slot: &failingSlot{getErr: errors.New("permission denied")},
			want: []string{},
		},
		{
			name: "valid data keeps order",
			slot: slot.NewMemorySlot(),
			setup: func(sl slot.Slot) {
				_ = sl.Set(DefaultKey, []byte(`[
					{"id":"b","date":"2024-01-02T00:00:00.000Z","content":"Call mom"},
					{"id":"a","date":"2024-01-01T00:00:00.000Z","content":"Buy milk"}
				]`))
			},
			want: []string{"Call mom", "Buy milk"},
		},
		{
			name: "duplicate ids keep first",
			slot: slot.NewMemorySlot(),
			setup: func(sl slot.Slot) {
				_ = sl.Set(DefaultKey, []byte(`[
					{"id":"a","date":"2024-01-02T00:00:00.000Z","content":"newer"},
					{"id":"a","date":"2024-01-01T00:00:00.000Z","content":"older"}
				]`))
			},
			want: []string{"newer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(tt.slot)
			}
			s := New(tt.slot, WithLogger(quiet))
			var n int
			require.NotPanics(t, func() { n = s.Load() })
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.want, contents(s.Notes()))
		})
	}
}

func TestLoad_AfterMalformedCreateStillWorks(t *testing.T) {
	sl := slot.NewMemorySlot()
	require.NoError(t, sl.Set(DefaultKey, []byte(`not json`)))

	s := newTestStore(t, sl)
	_, err := s.Create("fresh")
	require.NoError(t, err)

	reopened := newTestStore(t, sl)
	assert.Equal(t, []string{"fresh"}, contents(reopened.Notes()))
}

func TestReload_PicksUpExternalWrite(t *testing.T) {
	sl := slot.NewMemorySlot()
	s := newTestStore(t, sl)
	_, err := s.Create("mine")
	require.NoError(t, err)

	other := Open(sl, WithIDGenerator(note.IDGeneratorFunc(func() (string, error) { return "other-1", nil })), WithLogger(quiet))
	_, err = other.Create("theirs")
	require.NoError(t, err)

	assert.Equal(t, 2, s.Reload())
	assert.Equal(t, []string{"theirs", "mine"}, contents(s.Notes()))
}

// blockingSlot parks the next Get, once armed, until release is closed.
type blockingSlot struct {
	slot.Slot
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSlot) Get(key string) ([]byte, bool, error) {
	if b.armed.CompareAndSwap(true, false) {
		close(b.entered)
		<-b.release
	}
	return b.Slot.Get(key)
}

func TestReload_KeepsCreateMadeDuringRead(t *testing.T) {
	bs := &blockingSlot{
		Slot:    slot.NewMemorySlot(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := newTestStore(t, bs)
	_, err := s.Create("Buy milk")
	require.NoError(t, err)

	bs.armed.Store(true)
	reloaded := make(chan int)
	go func() { reloaded <- s.Reload() }()
	<-bs.entered

	created := make(chan error)
	go func() {
		_, err := s.Create("Call mom")
		created <- err
	}()
	close(bs.release)

	assert.Equal(t, 1, <-reloaded)
	require.NoError(t, <-created)

	_, err = s.Create("Third")
	require.NoError(t, err)

	assert.Equal(t, []string{"Third", "Call mom", "Buy milk"}, contents(s.Notes()))
	data, ok, err := bs.Slot.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	persisted, err := note.DecodeCollection(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Third", "Call mom", "Buy milk"}, contents(persisted))
}

func TestWithKey(t *testing.T) {
	sl := slot.NewMemorySlot()
	s := Open(sl, WithKey("scratch"), WithLogger(quiet))
	_, err := s.Create("x")
	require.NoError(t, err)
	assert.Equal(t, "scratch", s.Key())

	_, ok, err := sl.Get("scratch")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = sl.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotesReturnsCopy(t *testing.T) {
	s := newTestStore(t, slot.NewMemorySlot())
	_, err := s.Create("original")
	require.NoError(t, err)

	got := s.Notes()
	got[0].Content = "mutated"
	assert.Equal(t, "original", s.Notes()[0].Content)
}

func TestCreateProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sl := slot.NewMemorySlot()
		s := Open(sl, WithLogger(quiet))

		inputs := rapid.SliceOfN(rapid.StringN(1, 40, -1), 1, 25).Draw(t, "contents")
		seen := make(map[string]bool)
		for _, c := range inputs {
			before := s.Len()
			n, err := s.Create(c)
			if err != nil {
				t.Fatalf("Create(%q): %v", c, err)
			}
			if s.Len() != before+1 {
				t.Fatalf("len = %d, want %d", s.Len(), before+1)
			}
			if head := s.Notes()[0]; head.Content != c || head.ID != n.ID {
				t.Fatalf("head = %+v, want content %q id %q", head, c, n.ID)
			}
			if seen[n.ID] {
				t.Fatalf("duplicate id %q", n.ID)
			}
			seen[n.ID] = true
		}

		// Round-trip: a fresh store over the same slot sees an equal collection.
		reopened := Open(sl, WithLogger(quiet))
		want, got := s.Notes(), reopened.Notes()
		if len(got) != len(want) {
			t.Fatalf("reopened len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID || got[i].Content != want[i].Content || !got[i].Date.Equal(want[i].Date) {
				t.Fatalf("note %d: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})
}
