package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/notekeys/internal/logger"
	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/keyboard"
	"github.com/bastiangx/notekeys/pkg/store"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Options configures the sessions a Server opens.
type Options struct {
	RequeryDelay time.Duration
}

// panel is the server side renderer: it only remembers whether a drawing
// host would show the keyboard.
type panel struct {
	visible bool
}

func (p *panel) ShowKeyboard(bool)          { p.visible = true }
func (p *panel) HideKeyboard()              { p.visible = false }
func (p *panel) RenderSuggestions([]string) {}

type noteSession struct {
	session *keyboard.Session
	queue   *keyboard.Queue
	panel   *panel
}

// Server handles the IPC for note keyboards
type Server struct {
	suggester keyboard.Suggester
	notes     store.NoteStore
	opts      Options
	sessions  map[string]*noteSession

	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(suggester keyboard.Suggester, notes store.NoteStore, opts Options) *Server {
	return NewServerWithIO(suggester, notes, opts, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing
// responses to w.
func NewServerWithIO(suggester keyboard.Suggester, notes store.NoteStore, opts Options, r io.Reader, w io.Writer) *Server {
	return &Server{
		suggester: suggester,
		notes:     notes,
		opts:      opts,
		sessions:  make(map[string]*noteSession),
		decoder:   msgpack.NewDecoder(r),
		encoder:   msgpack.NewEncoder(w),
		logger:    logger.New("server"),
	}
}

// Start serves requests until the input ends. Every open session is closed,
// and so persisted, on the way out.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	defer s.closeAll()

	if err := s.send(Response{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed, shutting down", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", CodeBadRequest)
			return fmt.Errorf("failed to decode request: %w", err)
		}
		s.requestCount++
		if err := s.send(s.Handle(req)); err != nil {
			return err
		}
	}
}

// Handle processes one request and returns its response.
func (s *Server) Handle(req Request) Response {
	start := time.Now()

	var resp Response
	switch req.Op {
	case OpHealth:
		resp = Response{Status: "ok", Count: len(s.sessions)}
	case OpNewNote:
		resp = s.handleNewNote()
	case OpNotes:
		resp = s.handleNotes()
	case OpDeleteNote:
		resp = s.handleDeleteNote(req)
	case OpFocus, OpBlur, OpKey, OpSelect, OpClose, OpState:
		resp = s.handleSession(req)
	default:
		resp = errorResponse(fmt.Sprintf("unknown op: %q", req.Op), CodeBadRequest)
	}

	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	return resp
}

func (s *Server) handleNewNote() Response {
	note := store.NewNote()
	if err := s.notes.Save(note); err != nil {
		s.logger.Errorf("Creating note: %v", err)
		return errorResponse(err.Error(), CodeInternal)
	}
	ns := s.open(note)
	return snapshot(note.ID, ns)
}

func (s *Server) handleNotes() Response {
	notes, err := s.notes.Load()
	if err != nil {
		s.logger.Errorf("Loading notes: %v", err)
		return errorResponse(err.Error(), CodeInternal)
	}
	// live text wins over what was last persisted
	for i := range notes {
		if ns, ok := s.sessions[notes[i].ID]; ok {
			notes[i].Text = ns.session.Text()
		}
	}
	return Response{Status: "ok", Notes: notes, Count: len(notes)}
}

func (s *Server) handleDeleteNote(req Request) Response {
	if req.Note == "" {
		return errorResponse("missing note id", CodeBadRequest)
	}
	if ns, ok := s.sessions[req.Note]; ok {
		ns.session.Detach()
		delete(s.sessions, req.Note)
	}
	if err := s.notes.Remove(req.Note); err != nil {
		return storeError(err)
	}
	return Response{Status: "ok", Note: req.Note}
}

func (s *Server) handleSession(req Request) Response {
	if req.Note == "" {
		return errorResponse("missing note id", CodeBadRequest)
	}
	ns, err := s.session(req.Note)
	if err != nil {
		return storeError(err)
	}

	sess := ns.session
	switch req.Op {
	case OpFocus:
		sess.Focus()
	case OpBlur:
		sess.Blur(req.ToKeyboard)
	case OpKey:
		if req.Key == "" {
			return errorResponse("missing key", CodeBadRequest)
		}
		sess.Press(keyboard.Key(req.Key))
	case OpSelect:
		if req.Word == "" || utils.ContainsWhitespace(req.Word) {
			return errorResponse("select needs a single word", CodeBadRequest)
		}
		sess.OnSuggestionSelected(req.Word)
	case OpClose:
		sess.Close()
	}
	ns.queue.Drain()

	return snapshot(req.Note, ns)
}

// session returns the open session for id, opening it from the store.
func (s *Server) session(id string) (*noteSession, error) {
	if ns, ok := s.sessions[id]; ok {
		return ns, nil
	}
	note, err := s.notes.Get(id)
	if err != nil {
		return nil, err
	}
	return s.open(note), nil
}

func (s *Server) open(note store.Note) *noteSession {
	ns := &noteSession{
		queue: &keyboard.Queue{},
		panel: &panel{},
	}
	ns.session = keyboard.NewSession(
		buffer.New(note.Text),
		s.suggester,
		ns.panel,
		store.NewTextPersister(s.notes, note.ID),
		keyboard.Options{
			RequeryDelay: s.opts.RequeryDelay,
			Scheduler:    ns.queue,
			Logger:       logger.ForNote("keyboard", note.ID),
		},
	)
	s.sessions[note.ID] = ns
	s.logger.Debug("Opened session", "note", note.ID, "text", utils.TruncateRunes(note.Text, 24), "sessions", len(s.sessions))
	return ns
}

func (s *Server) closeAll() {
	for id, ns := range s.sessions {
		ns.session.Close()
		ns.session.Detach()
		delete(s.sessions, id)
	}
}

func snapshot(id string, ns *noteSession) Response {
	words := ns.session.Suggestions()
	ranks := utils.CreateRankList(len(words))
	suggestions := make([]Suggestion, len(words))
	for i, w := range words {
		suggestions[i] = Suggestion{Word: w, Rank: ranks[i]}
	}
	return Response{
		Note:        id,
		Text:        ns.session.Text(),
		State:       ns.session.State().String(),
		Visible:     ns.panel.visible,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}
}

func storeError(err error) Response {
	switch {
	case errors.Is(err, store.ErrNoteNotFound):
		return errorResponse(err.Error(), CodeNotFound)
	case errors.Is(err, store.ErrEmptyKey):
		return errorResponse(err.Error(), CodeBadRequest)
	default:
		return errorResponse(err.Error(), CodeInternal)
	}
}

func errorResponse(message string, code int) Response {
	return Response{Error: message, Code: code}
}

func (s *Server) send(resp Response) error {
	if err := s.encoder.Encode(resp); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// sendError writes an error response
func (s *Server) sendError(id, message string, code int) {
	resp := errorResponse(message, code)
	resp.ID = id
	_ = s.send(resp)
}
