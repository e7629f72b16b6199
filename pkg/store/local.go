package store

import (
	"encoding/json"
	"fmt"
)

// LocalStorageKey holds the JSON note array of the local storage fallback.
const LocalStorageKey = "stickyNotes"

// LocalNotes keeps all notes as one JSON array under LocalStorageKey. It is
// the fallback when the host has no property schema.
type LocalNotes struct {
	props PropertyStore
}

// NewLocalNotes stores notes in props under LocalStorageKey.
func NewLocalNotes(props PropertyStore) *LocalNotes {
	return &LocalNotes{props: props}
}

// Load decodes the array. A missing key reads as no notes.
func (ln *LocalNotes) Load() ([]Note, error) {
	raw, ok := ln.props.GetProperty(LocalStorageKey)
	if !ok || raw == "" {
		return []Note{}, nil
	}
	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", LocalStorageKey, err)
	}
	for i := range notes {
		fillDefaults(&notes[i])
	}
	return notes, nil
}

func (ln *LocalNotes) write(notes []Note) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	return ln.props.SetProperty(LocalStorageKey, string(data))
}

// Save replaces the note with the same ID or appends it.
func (ln *LocalNotes) Save(note Note) error {
	if note.ID == "" {
		return ErrEmptyKey
	}
	notes, err := ln.Load()
	if err != nil {
		return err
	}
	replaced := false
	for i := range notes {
		if notes[i].ID == note.ID {
			notes[i] = note
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append(notes, note)
	}
	return ln.write(notes)
}

func (ln *LocalNotes) Get(id string) (Note, error) {
	if id == "" {
		return Note{}, ErrEmptyKey
	}
	notes, err := ln.Load()
	if err != nil {
		return Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, NewNoteNotFoundError(id)
}

func (ln *LocalNotes) Remove(id string) error {
	if id == "" {
		return ErrEmptyKey
	}
	notes, err := ln.Load()
	if err != nil {
		return err
	}
	for i := range notes {
		if notes[i].ID == id {
			return ln.write(append(notes[:i], notes[i+1:]...))
		}
	}
	return NewNoteNotFoundError(id)
}

func (ln *LocalNotes) Clear() error {
	return ln.props.SetProperty(LocalStorageKey, "")
}

func fillDefaults(n *Note) {
	if n.Width == 0 {
		n.Width = DefaultWidth
	}
	if n.Height == 0 {
		n.Height = DefaultHeight
	}
	if n.Color == "" {
		n.Color = DefaultColor
	}
}
