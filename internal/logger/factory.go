package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// ForNote returns a logger tagged with the note it serves.
func ForNote(prefix, noteID string) *log.Logger {
	return New(prefix).With("note", noteID)
}

// Discard returns a logger that drops everything; handy in tests and hosts
// that own the terminal.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
