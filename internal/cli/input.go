// Package cli drives a note keyboard from typed lines, for debugging the
// suggestion flow in a plain terminal.
package cli

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/notekeys/internal/logger"
	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/keyboard"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Options controls what the handler prints.
type Options struct {
	ShowScores   bool
	ShowTiming   bool
	RequeryDelay time.Duration
}

// InputHandler feeds each typed line into a keyboard session as key presses
// and prints the resulting suggestion panel.
//
// Besides plain text a line can be one of:
//
//	:1 .. :9   select that suggestion
//	:bs        backspace
//	:nl        newline
//	:sp        space
//	:text      print the note text
//	:stats     print engine statistics
//	:q         close the keyboard and quit
type InputHandler struct {
	engine       *suggest.Engine
	session      *keyboard.Session
	view         *terminal
	opts         Options
	requestCount int
}

// NewInputHandler creates a handler printing to stdout.
func NewInputHandler(engine *suggest.Engine, persister keyboard.Persister, initial string, opts Options) *InputHandler {
	return NewInputHandlerWithOutput(engine, persister, initial, opts, os.Stdout)
}

// NewInputHandlerWithOutput creates a handler printing to w.
func NewInputHandlerWithOutput(engine *suggest.Engine, persister keyboard.Persister, initial string, opts Options, w io.Writer) *InputHandler {
	view := newTerminal(w)
	session := keyboard.NewSession(buffer.New(initial), engine, view, persister, keyboard.Options{
		RequeryDelay: opts.RequeryDelay,
		Logger:       logger.New("keyboard"),
	})
	return &InputHandler{
		engine:  engine,
		session: session,
		view:    view,
		opts:    opts,
	}
}

// Session returns the driven keyboard session.
func (h *InputHandler) Session() *keyboard.Session {
	return h.session
}

// Start opens the keyboard and reads lines from stdin until EOF or :q.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin)
}

// Run reads lines from r until EOF or :q.
func (h *InputHandler) Run(r io.Reader) error {
	h.view.out.Print("NoteKeys CLI [BETA]")
	h.view.out.Print("type text and press Enter; :1-:9 picks a suggestion, :q quits")
	h.session.Focus()

	scanner := bufio.NewScanner(r)
	for {
		h.view.out.Print("> ")
		if !scanner.Scan() {
			h.session.Close()
			return scanner.Err()
		}
		if quit := h.handleLine(scanner.Text()); quit {
			return nil
		}
	}
}

// handleLine applies one line and reports whether the user asked to quit.
func (h *InputHandler) handleLine(line string) bool {
	h.requestCount++
	start := time.Now()

	cmd := strings.TrimSpace(line)
	switch {
	case cmd == ":q":
		h.session.Close()
		return true
	case cmd == ":bs":
		h.session.Press(keyboard.KeyBackspace)
	case cmd == ":nl":
		h.session.Press(keyboard.KeyEnter)
	case cmd == ":sp":
		h.session.Press(keyboard.KeySpace)
	case cmd == ":text":
		h.view.printText(h.session.Text())
		return false
	case cmd == ":stats":
		h.printStats()
		return false
	case strings.HasPrefix(cmd, ":"):
		if !h.selectByIndex(cmd[1:]) {
			log.Errorf("Unknown command: %s", cmd)
			return false
		}
	default:
		h.typeLine(line)
	}

	if h.opts.ShowScores {
		h.view.printScores(h.engine.SuggestFor(h.session.Buffer()))
	}
	if h.opts.ShowTiming {
		log.Debugf("Took [ %v ] for %q", time.Since(start), line)
	}
	h.view.printPanel()
	h.view.printText(h.session.Text())
	return false
}

func (h *InputHandler) typeLine(line string) {
	for _, r := range line {
		if r == ' ' {
			h.session.Press(keyboard.KeySpace)
			continue
		}
		h.session.Press(keyboard.Key(string(r)))
	}
}

func (h *InputHandler) selectByIndex(arg string) bool {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return false
	}
	words := h.session.Suggestions()
	if n < 1 || n > len(words) {
		log.Warnf("No suggestion #%d (have %d)", n, len(words))
		return true
	}
	h.session.Select(words[n-1])
	return true
}

func (h *InputHandler) printStats() {
	stats := h.engine.Stats()
	h.view.out.Printf("words: %s  cache: %s/%s  hits: %s  lines: %s",
		utils.FormatWithCommas(stats["totalWords"]),
		utils.FormatWithCommas(stats["cacheEntries"]),
		utils.FormatWithCommas(stats["maxCacheEntries"]),
		utils.FormatWithCommas(stats["cacheHits"]),
		utils.FormatWithCommas(h.requestCount),
	)
}
