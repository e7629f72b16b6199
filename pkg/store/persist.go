package store

import "errors"

// TextPersister saves the text of one note, creating the note on first use.
// It satisfies the keyboard's Persister.
type TextPersister struct {
	notes NoteStore
	id    string
}

// NewTextPersister binds id in notes.
func NewTextPersister(notes NoteStore, id string) *TextPersister {
	return &TextPersister{notes: notes, id: id}
}

func (tp *TextPersister) Persist(text string) error {
	note, err := tp.notes.Get(tp.id)
	if errors.Is(err, ErrNoteNotFound) {
		note = NewNote()
		note.ID = tp.id
	} else if err != nil {
		return err
	}
	note.Text = text
	return tp.notes.Save(note)
}
