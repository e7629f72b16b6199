package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Note defaults
const (
	DefaultWidth  = 200
	DefaultHeight = 150
	DefaultX      = 100
	DefaultY      = 100
	DefaultColor  = "255 255 153"
)

// Note is a sticky note as stored.
type Note struct {
	ID     string `json:"id" msgpack:"id"`
	Text   string `json:"text" msgpack:"text"`
	X      int    `json:"x" msgpack:"x"`
	Y      int    `json:"y" msgpack:"y"`
	Width  int    `json:"width" msgpack:"width"`
	Height int    `json:"height" msgpack:"height"`
	Color  string `json:"color" msgpack:"color"`
}

// NewNote returns an empty note with a fresh ID at the default position.
func NewNote() Note {
	return Note{
		ID:     uuid.NewString(),
		X:      DefaultX,
		Y:      DefaultY,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Color:  DefaultColor,
	}
}

// NoteStore saves and loads notes.
type NoteStore interface {
	Save(note Note) error
	Get(id string) (Note, error)
	Load() ([]Note, error)
	Remove(id string) error
	Clear() error
}

const noteCountKey = "note_count"

func noteKey(slot int, field string) string {
	return fmt.Sprintf("note_%d_%s", slot, field)
}

// PropertyNotes stores notes in numbered slots:
//
//	note_count        number of slots in use
//	note_{i}_id       note ID, "" for a freed slot
//	note_{i}_text     ...and x, y, color, width, height
//
// Slots are 1-based. Removing a note blanks its slot without renumbering.
type PropertyNotes struct {
	props PropertyStore
}

// NewPropertyNotes stores notes in props.
func NewPropertyNotes(props PropertyStore) *PropertyNotes {
	return &PropertyNotes{props: props}
}

func (pn *PropertyNotes) count() int {
	return pn.intProp(noteCountKey, 0)
}

func (pn *PropertyNotes) intProp(key string, def int) int {
	v, ok := pn.props.GetProperty(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Warnf("Property %s is not a number: %q", key, v)
		return def
	}
	return n
}

func (pn *PropertyNotes) slotOf(id string) int {
	for i := 1; i <= pn.count(); i++ {
		if v, _ := pn.props.GetProperty(noteKey(i, "id")); v == id {
			return i
		}
	}
	return -1
}

// Save writes note into its slot, appending a slot for a new note.
func (pn *PropertyNotes) Save(note Note) error {
	if note.ID == "" {
		return ErrEmptyKey
	}

	values := slotValues(note)
	slot := pn.slotOf(note.ID)
	if slot == -1 {
		slot = pn.count() + 1
		values[noteCountKey] = strconv.Itoa(slot)
	}

	prefixed := make(map[string]string, len(values))
	for field, v := range values {
		if field == noteCountKey {
			prefixed[field] = v
			continue
		}
		prefixed[noteKey(slot, field)] = v
	}
	if err := setAll(pn.props, prefixed); err != nil {
		return fmt.Errorf("failed to save note %s: %w", note.ID, err)
	}
	log.Debugf("Note %s saved to slot %d", note.ID, slot)
	return nil
}

func slotValues(note Note) map[string]string {
	return map[string]string{
		"id":     note.ID,
		"text":   note.Text,
		"x":      strconv.Itoa(note.X),
		"y":      strconv.Itoa(note.Y),
		"color":  note.Color,
		"width":  strconv.Itoa(note.Width),
		"height": strconv.Itoa(note.Height),
	}
}

func (pn *PropertyNotes) readSlot(slot int) Note {
	color, _ := pn.props.GetProperty(noteKey(slot, "color"))
	if color == "" {
		color = DefaultColor
	}
	id, _ := pn.props.GetProperty(noteKey(slot, "id"))
	text, _ := pn.props.GetProperty(noteKey(slot, "text"))
	return Note{
		ID:     id,
		Text:   text,
		X:      pn.intProp(noteKey(slot, "x"), DefaultX),
		Y:      pn.intProp(noteKey(slot, "y"), DefaultY),
		Width:  pn.intProp(noteKey(slot, "width"), DefaultWidth),
		Height: pn.intProp(noteKey(slot, "height"), DefaultHeight),
		Color:  color,
	}
}

// Get returns the note with id.
func (pn *PropertyNotes) Get(id string) (Note, error) {
	if id == "" {
		return Note{}, ErrEmptyKey
	}
	slot := pn.slotOf(id)
	if slot == -1 {
		return Note{}, NewNoteNotFoundError(id)
	}
	return pn.readSlot(slot), nil
}

// Load returns every note in slot order, skipping freed slots.
func (pn *PropertyNotes) Load() ([]Note, error) {
	n := pn.count()
	notes := make([]Note, 0, n)
	for i := 1; i <= n; i++ {
		if id, _ := pn.props.GetProperty(noteKey(i, "id")); id == "" {
			continue
		}
		notes = append(notes, pn.readSlot(i))
	}
	log.Debugf("Loaded %d notes from properties", len(notes))
	return notes, nil
}

// Remove blanks the slot holding id.
func (pn *PropertyNotes) Remove(id string) error {
	if id == "" {
		return ErrEmptyKey
	}
	slot := pn.slotOf(id)
	if slot == -1 {
		return NewNoteNotFoundError(id)
	}
	if err := pn.blank(slot); err != nil {
		return fmt.Errorf("failed to remove note %s: %w", id, err)
	}
	return nil
}

func (pn *PropertyNotes) blank(slot int) error {
	values := map[string]string{
		noteKey(slot, "id"):     "",
		noteKey(slot, "text"):   "",
		noteKey(slot, "x"):      "0",
		noteKey(slot, "y"):      "0",
		noteKey(slot, "color"):  DefaultColor,
		noteKey(slot, "width"):  strconv.Itoa(DefaultWidth),
		noteKey(slot, "height"): strconv.Itoa(DefaultHeight),
	}
	return setAll(pn.props, values)
}

// Clear blanks every slot and resets the count.
func (pn *PropertyNotes) Clear() error {
	for i := 1; i <= pn.count(); i++ {
		if err := pn.blank(i); err != nil {
			return fmt.Errorf("failed to clear slot %d: %w", i, err)
		}
	}
	return pn.props.SetProperty(noteCountKey, "0")
}
