package server

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/bastiangx/notekeys/pkg/store"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(t *testing.T, in io.Reader, out io.Writer) (*Server, store.NoteStore) {
	t.Helper()
	notes := store.NewPropertyNotes(store.NewMemoryProperties())
	engine := suggest.NewEngine(dictionary.Load(dictionary.Embedded()), suggest.DefaultOptions())
	return NewServerWithIO(engine, notes, Options{}, in, out), notes
}

func words(resp Response) []string {
	out := make([]string, len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		out[i] = s.Word
	}
	return out
}

func TestHandleTypingFlow(t *testing.T) {
	s, notes := newTestServer(t, &bytes.Buffer{}, &bytes.Buffer{})

	created := s.Handle(Request{ID: "1", Op: OpNewNote})
	require.Empty(t, created.Error)
	id := created.Note
	require.NotEmpty(t, id)
	assert.Equal(t, "closed", created.State)

	focused := s.Handle(Request{ID: "2", Op: OpFocus, Note: id})
	assert.Equal(t, "idle", focused.State)
	assert.True(t, focused.Visible)
	assert.Empty(t, focused.Suggestions)

	var resp Response
	for _, k := range []string{"t", "h", "e"} {
		resp = s.Handle(Request{ID: "k", Op: OpKey, Note: id, Key: k})
	}
	assert.Equal(t, "the", resp.Text)
	assert.Equal(t, "suggesting", resp.State)
	assert.Contains(t, words(resp), "then")
	assert.Contains(t, words(resp), "there")
	for i, sg := range resp.Suggestions {
		assert.Equal(t, uint16(i+1), sg.Rank)
	}

	selected := s.Handle(Request{ID: "3", Op: OpSelect, Note: id, Word: "the"})
	assert.Equal(t, "the ", selected.Text)
	assert.Equal(t, []string{"best", "first", "same", "next", "last"}, words(selected))
	assert.Equal(t, 5, selected.Count)

	// stored text follows every change
	stored, err := notes.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "the ", stored.Text)

	stay := s.Handle(Request{ID: "4", Op: OpBlur, Note: id, ToKeyboard: true})
	assert.Equal(t, "suggesting", stay.State)

	closed := s.Handle(Request{ID: "5", Op: OpBlur, Note: id})
	assert.Equal(t, "closed", closed.State)
	assert.False(t, closed.Visible)
	assert.Empty(t, closed.Suggestions)
	assert.Equal(t, "5", closed.ID)
}

func TestHandleErrors(t *testing.T) {
	s, _ := newTestServer(t, &bytes.Buffer{}, &bytes.Buffer{})

	testCases := []struct {
		name string
		req  Request
		code int
	}{
		{"unknown op", Request{Op: "dance"}, CodeBadRequest},
		{"missing note", Request{Op: OpFocus}, CodeBadRequest},
		{"unknown note", Request{Op: OpKey, Note: "nope", Key: "a"}, CodeNotFound},
		{"delete unknown", Request{Op: OpDeleteNote, Note: "nope"}, CodeNotFound},
		{"delete without id", Request{Op: OpDeleteNote}, CodeBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := s.Handle(tc.req)
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}

	id := s.Handle(Request{Op: OpNewNote}).Note
	resp := s.Handle(Request{Op: OpKey, Note: id})
	assert.Equal(t, CodeBadRequest, resp.Code)

	for _, w := range []string{"", "two words"} {
		resp = s.Handle(Request{Op: OpSelect, Note: id, Word: w})
		assert.Equal(t, CodeBadRequest, resp.Code, w)
	}
}

func TestHandleNotesAndDelete(t *testing.T) {
	s, _ := newTestServer(t, &bytes.Buffer{}, &bytes.Buffer{})

	a := s.Handle(Request{Op: OpNewNote}).Note
	b := s.Handle(Request{Op: OpNewNote}).Note
	s.Handle(Request{Op: OpFocus, Note: a})
	s.Handle(Request{Op: OpKey, Note: a, Key: "hi"})

	list := s.Handle(Request{Op: OpNotes})
	require.Len(t, list.Notes, 2)
	assert.Equal(t, "hi", list.Notes[0].Text)
	assert.Equal(t, store.DefaultWidth, list.Notes[1].Width)

	del := s.Handle(Request{Op: OpDeleteNote, Note: b})
	assert.Empty(t, del.Error)
	assert.Equal(t, 1, s.Handle(Request{Op: OpNotes}).Count)
	assert.Equal(t, 1, s.Handle(Request{Op: OpHealth}).Count)
}

func TestStartStream(t *testing.T) {
	var in, out bytes.Buffer
	s, notes := newTestServer(t, &in, &out)

	note := store.NewNote()
	note.ID = "n1"
	note.Text = "I am"
	require.NoError(t, notes.Save(note))

	enc := msgpack.NewEncoder(&in)
	for _, req := range []Request{
		{ID: "a", Op: OpHealth},
		{ID: "b", Op: OpFocus, Note: "n1"},
		{ID: "c", Op: OpKey, Note: "n1", Key: "space"},
		{ID: "d", Op: OpState, Note: "n1"},
	} {
		require.NoError(t, enc.Encode(req))
	}

	require.NoError(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var responses []Response
	for {
		var resp Response
		if err := dec.Decode(&resp); err != nil {
			require.True(t, errors.Is(err, io.EOF), "unexpected decode error: %v", err)
			break
		}
		responses = append(responses, resp)
	}

	require.Len(t, responses, 5)
	assert.Equal(t, "ready", responses[0].Status)
	assert.Equal(t, "ok", responses[1].Status)
	assert.Equal(t, "I am ", responses[3].Text)
	assert.Contains(t, words(responses[3]), "happy")
	assert.Equal(t, "d", responses[4].ID)
	assert.Equal(t, words(responses[3]), words(responses[4]))

	// sessions are closed and persisted when the input ends
	stored, err := notes.Get("n1")
	require.NoError(t, err)
	assert.Equal(t, "I am ", stored.Text)
}

func TestStartRejectsGarbage(t *testing.T) {
	in := bytes.NewBuffer([]byte{0xc1})
	var out bytes.Buffer
	s, _ := newTestServer(t, in, &out)

	assert.Error(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var ready, failure Response
	require.NoError(t, dec.Decode(&ready))
	require.NoError(t, dec.Decode(&failure))
	assert.Equal(t, CodeBadRequest, failure.Code)
}
