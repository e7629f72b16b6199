/*
Package server implements msgpack IPC for note keyboard sessions.

The server drives one keyboard session per note over stdin/stdout, so a
wallpaper or widget host only has to forward focus changes and key presses and
draw what comes back.

# IPC

Clients write a stream of msgpack encoded requests on stdin and read one
response per request from stdout. Every request carries an ID that is echoed
back and an op naming the action:

	{"id": "r1", "op": "new_note"}
	{"id": "r2", "op": "focus", "n": "2b1f..."}
	{"id": "r3", "op": "key", "n": "2b1f...", "k": "t"}
	{"id": "r4", "op": "select", "n": "2b1f...", "w": "the"}
	{"id": "r5", "op": "blur", "n": "2b1f...", "tk": false}

Session ops (focus, blur, key, select, close, state) answer with the note text,
the keyboard state and the suggestion panel, ranked from 1:

	{"id": "r3", "n": "2b1f...", "x": "t", "st": "suggesting", "s": [{"w": "the", "r": 1}, ...], "c": 6, "t": 85}

Note ops (new_note, notes, delete_note) manage the stored notes, and health
reports liveness. Failures carry a message and an HTTP-like code:

	{"id": "r9", "e": "note with ID 'x' not found", "code": 404}

The first message written after start is {"status": "ready"}.
*/
package server

import "github.com/bastiangx/notekeys/pkg/store"

// Ops understood by the server
const (
	OpFocus      = "focus"
	OpBlur       = "blur"
	OpKey        = "key"
	OpSelect     = "select"
	OpClose      = "close"
	OpState      = "state"
	OpNewNote    = "new_note"
	OpNotes      = "notes"
	OpDeleteNote = "delete_note"
	OpHealth     = "health"
)

// Error codes
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)

// Request is one client message.
type Request struct {
	ID         string `msgpack:"id"`
	Op         string `msgpack:"op"`
	Note       string `msgpack:"n,omitempty"`
	Key        string `msgpack:"k,omitempty"`
	Word       string `msgpack:"w,omitempty"`
	ToKeyboard bool   `msgpack:"tk,omitempty"`
}

// Suggestion is one panel entry.
type Suggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// Response answers a Request. Only the fields relevant to the op are set.
type Response struct {
	ID          string       `msgpack:"id"`
	Status      string       `msgpack:"status,omitempty"`
	Note        string       `msgpack:"n,omitempty"`
	Text        string       `msgpack:"x"`
	State       string       `msgpack:"st,omitempty"`
	Visible     bool         `msgpack:"v"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
	Notes       []store.Note `msgpack:"notes,omitempty"`
	Error       string       `msgpack:"e,omitempty"`
	Code        int          `msgpack:"code,omitempty"`
}
