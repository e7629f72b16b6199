package store

import "fmt"

// Layouts accepted by Open
const (
	LayoutProperties = "properties"
	LayoutLocal      = "local"
)

// Open returns a note store of the given layout backed by the msgpack file at
// path, or by memory when path is empty.
func Open(path, layout string) (NoteStore, error) {
	var props PropertyStore
	if path == "" {
		props = NewMemoryProperties()
	} else {
		fp, err := OpenFileProperties(path)
		if err != nil {
			return nil, err
		}
		props = fp
	}

	switch layout {
	case "", LayoutProperties:
		return NewPropertyNotes(props), nil
	case LayoutLocal:
		return NewLocalNotes(props), nil
	default:
		return nil, fmt.Errorf("unknown store layout %q", layout)
	}
}
