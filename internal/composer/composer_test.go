package composer

import (
	"errors"
	"testing"
	"time"

	"github.com/marcus/notecards/internal/note"
	"github.com/marcus/notecards/internal/notes"
	"github.com/marcus/notecards/internal/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCreator struct {
	created []string
	err     error
}

func (r *recordingCreator) Create(content string) (note.Note, error) {
	if r.err != nil {
		return note.Note{}, r.err
	}
	r.created = append(r.created, content)
	return note.Note{ID: "n", Date: time.Now(), Content: content}, nil
}

func TestNewStartsInPrompt(t *testing.T) {
	c := New()
	assert.Equal(t, Prompt, c.State())
	assert.Equal(t, "", c.Content())
}

func TestUseText(t *testing.T) {
	c := New()
	c.UseText()
	assert.Equal(t, Editing, c.State())

	c.UseText()
	assert.Equal(t, Editing, c.State())
}

func TestClearingContentReturnsToPrompt(t *testing.T) {
	c := New()
	c.UseText()
	c.SetContent("draft")
	assert.Equal(t, Editing, c.State())

	c.SetContent("")
	assert.Equal(t, Prompt, c.State())
}

func TestSubmit(t *testing.T) {
	c := New()
	rec := &recordingCreator{}
	c.UseText()
	c.SetContent("Buy milk")

	n, ok, err := c.Submit(rec)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Buy milk", n.Content)
	assert.Equal(t, []string{"Buy milk"}, rec.created)
	assert.Equal(t, "", c.Content())
	assert.Equal(t, Prompt, c.State())
}

func TestSubmitEmptyIsSilent(t *testing.T) {
	c := New()
	rec := &recordingCreator{}
	c.UseText()

	_, ok, err := c.Submit(rec)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rec.created)
	assert.Equal(t, Editing, c.State())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	c := New()
	c.UseText()
	c.SetContent("keep me")

	_, ok, err := c.Submit(&recordingCreator{err: errors.New("boom")})
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "keep me", c.Content())
	assert.Equal(t, Editing, c.State())
}

type unsavedCreator struct{}

func (unsavedCreator) Create(content string) (note.Note, error) {
	return note.Note{ID: "n", Content: content}, errors.New("persist notes: disk full")
}

func TestSubmitUnsavedNoteClearsDraft(t *testing.T) {
	c := New()
	c.UseText()
	c.SetContent("written but not saved")

	n, ok, err := c.Submit(unsavedCreator{})
	assert.Error(t, err)
	assert.True(t, ok)
	assert.Equal(t, "written but not saved", n.Content)
	assert.Equal(t, "", c.Content())
	assert.Equal(t, Prompt, c.State())
}

func TestReset(t *testing.T) {
	c := New()
	c.UseText()
	c.SetContent("draft")
	c.Reset()
	assert.Equal(t, "", c.Content())
	assert.Equal(t, Prompt, c.State())
}

func TestSubmitThroughStore(t *testing.T) {
	store := notes.Open(slot.NewMemorySlot())
	c := New()

	c.UseText()
	c.SetContent("Buy milk")
	_, ok, err := c.Submit(store)
	require.NoError(t, err)
	require.True(t, ok)

	c.UseText()
	c.SetContent("Call mom")
	_, ok, err = c.Submit(store)
	require.NoError(t, err)
	require.True(t, ok)

	got := store.Notes()
	require.Len(t, got, 2)
	assert.Equal(t, "Call mom", got[0].Content)
	assert.Equal(t, "Buy milk", got[1].Content)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "prompt", Prompt.String())
	assert.Equal(t, "editing", Editing.String())
}
