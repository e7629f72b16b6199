package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProps struct {
	*MemoryProperties
}

func (failingProps) SetProperty(string, string) error { return errors.New("read-only") }

func TestPropertyNotesSchema(t *testing.T) {
	props := NewMemoryProperties()
	notes := NewPropertyNotes(props)

	a := Note{ID: "a", Text: "buy milk", X: 10, Y: 20, Width: 300, Height: 180, Color: "255 0 0"}
	require.NoError(t, notes.Save(a))

	count, _ := props.GetProperty("note_count")
	assert.Equal(t, "1", count)
	assert.Equal(t, []string{
		"note_1_color", "note_1_height", "note_1_id", "note_1_text",
		"note_1_width", "note_1_x", "note_1_y", "note_count",
	}, props.Keys())
	text, _ := props.GetProperty("note_1_text")
	assert.Equal(t, "buy milk", text)
	width, _ := props.GetProperty("note_1_width")
	assert.Equal(t, "300", width)

	// resaving keeps the slot
	a.Text = "buy oat milk"
	require.NoError(t, notes.Save(a))
	count, _ = props.GetProperty("note_count")
	assert.Equal(t, "1", count)

	got, err := notes.Get("a")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestPropertyNotesRemoveLeavesHole(t *testing.T) {
	props := NewMemoryProperties()
	notes := NewPropertyNotes(props)

	for _, id := range []string{"a", "b", "c"} {
		n := NewNote()
		n.ID = id
		require.NoError(t, notes.Save(n))
	}
	require.NoError(t, notes.Remove("b"))

	id, _ := props.GetProperty("note_2_id")
	assert.Empty(t, id)
	count, _ := props.GetProperty("note_count")
	assert.Equal(t, "3", count)

	loaded, err := notes.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "a", loaded[0].ID)
	assert.Equal(t, "c", loaded[1].ID)

	err = notes.Remove("b")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestPropertyNotesDefaults(t *testing.T) {
	props := NewMemoryProperties()
	require.NoError(t, props.SetProperty("note_count", "1"))
	require.NoError(t, props.SetProperty("note_1_id", "legacy"))
	require.NoError(t, props.SetProperty("note_1_x", "oops"))

	got, err := NewPropertyNotes(props).Get("legacy")
	require.NoError(t, err)
	assert.Equal(t, DefaultX, got.X)
	assert.Equal(t, DefaultWidth, got.Width)
	assert.Equal(t, DefaultHeight, got.Height)
	assert.Equal(t, DefaultColor, got.Color)
}

func TestPropertyNotesClear(t *testing.T) {
	notes := NewPropertyNotes(NewMemoryProperties())
	require.NoError(t, notes.Save(NewNote()))
	require.NoError(t, notes.Save(NewNote()))
	require.NoError(t, notes.Clear())

	loaded, err := notes.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestEmptyKeys(t *testing.T) {
	for name, ns := range map[string]NoteStore{
		"properties": NewPropertyNotes(NewMemoryProperties()),
		"local":      NewLocalNotes(NewMemoryProperties()),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, ns.Save(Note{}), ErrEmptyKey)
			_, err := ns.Get("")
			assert.ErrorIs(t, err, ErrEmptyKey)
			assert.ErrorIs(t, ns.Remove(""), ErrEmptyKey)
		})
	}
	assert.ErrorIs(t, NewMemoryProperties().SetProperty("", "x"), ErrEmptyKey)
}

func TestLocalNotes(t *testing.T) {
	props := NewMemoryProperties()
	notes := NewLocalNotes(props)

	loaded, err := notes.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	a, b := NewNote(), NewNote()
	a.Text = "first"
	require.NoError(t, notes.Save(a))
	require.NoError(t, notes.Save(b))
	a.Text = "first edited"
	require.NoError(t, notes.Save(a))

	raw, ok := props.GetProperty(LocalStorageKey)
	require.True(t, ok)
	assert.Contains(t, raw, `"text":"first edited"`)

	loaded, err = notes.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, a, loaded[0])

	require.NoError(t, notes.Remove(a.ID))
	_, err = notes.Get(a.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	require.NoError(t, notes.Clear())
	loaded, err = notes.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLocalNotesFillsDefaults(t *testing.T) {
	props := NewMemoryProperties()
	require.NoError(t, props.SetProperty(LocalStorageKey, `[{"id":"x","text":"hi","x":5,"y":6}]`))

	got, err := NewLocalNotes(props).Get("x")
	require.NoError(t, err)
	assert.Equal(t, Note{ID: "x", Text: "hi", X: 5, Y: 6, Width: DefaultWidth, Height: DefaultHeight, Color: DefaultColor}, got)
}

func TestLocalNotesCorrupt(t *testing.T) {
	props := NewMemoryProperties()
	require.NoError(t, props.SetProperty(LocalStorageKey, "{not json"))
	_, err := NewLocalNotes(props).Load()
	assert.Error(t, err)
}

func TestFilePropertiesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "notes.msgpack")

	fp, err := OpenFileProperties(path)
	require.NoError(t, err)
	notes := NewPropertyNotes(fp)

	n := NewNote()
	n.Text = "persisted"
	require.NoError(t, notes.Save(n))

	reopened, err := OpenFileProperties(path)
	require.NoError(t, err)
	got, err := NewPropertyNotes(reopened).Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestOpen(t *testing.T) {
	ns, err := Open("", "")
	require.NoError(t, err)
	assert.IsType(t, &PropertyNotes{}, ns)

	ns, err = Open(filepath.Join(t.TempDir(), "p.msgpack"), LayoutLocal)
	require.NoError(t, err)
	assert.IsType(t, &LocalNotes{}, ns)

	_, err = Open("", "sqlite")
	assert.Error(t, err)
}

func TestTextPersister(t *testing.T) {
	notes := NewPropertyNotes(NewMemoryProperties())
	tp := NewTextPersister(notes, "n1")

	require.NoError(t, tp.Persist("hel"))
	require.NoError(t, tp.Persist("hello"))

	got, err := notes.Get("n1")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, DefaultWidth, got.Width)

	broken := NewTextPersister(NewPropertyNotes(failingProps{NewMemoryProperties()}), "n2")
	assert.Error(t, broken.Persist("x"))
}

func TestNoteNotFoundError(t *testing.T) {
	err := NewNoteNotFoundError("abc")
	assert.True(t, errors.Is(err, ErrNoteNotFound))
	assert.Contains(t, err.Error(), "abc")
}
