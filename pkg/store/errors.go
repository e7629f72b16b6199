package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations
var (
	// ErrNoteNotFound is returned when no note has the requested ID
	ErrNoteNotFound = errors.New("note not found")

	// ErrEmptyKey is returned when a property key or note ID is empty
	ErrEmptyKey = errors.New("empty key")
)

// NoteNotFoundError carries the ID that was looked up.
type NoteNotFoundError struct {
	ID string
}

func (e *NoteNotFoundError) Error() string {
	return fmt.Sprintf("note with ID '%s' not found", e.ID)
}

func (e *NoteNotFoundError) Is(target error) bool {
	return target == ErrNoteNotFound
}

// NewNoteNotFoundError creates a new NoteNotFoundError
func NewNoteNotFoundError(id string) *NoteNotFoundError {
	return &NoteNotFoundError{ID: id}
}
