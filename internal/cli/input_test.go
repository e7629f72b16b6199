package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/bastiangx/notekeys/pkg/keyboard"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(out *bytes.Buffer, saved *[]string) *InputHandler {
	engine := suggest.NewEngine(dictionary.New([]string{"the", "then", "there", "that"}), suggest.DefaultOptions())
	persist := keyboard.PersistFunc(func(text string) error {
		*saved = append(*saved, text)
		return nil
	})
	return NewInputHandlerWithOutput(engine, persist, "", Options{}, out)
}

func TestRunTypeSelectQuit(t *testing.T) {
	var out bytes.Buffer
	var saved []string
	h := newTestHandler(&out, &saved)

	require.NoError(t, h.Run(strings.NewReader("th\n:2\n:q\n")))

	assert.Equal(t, "then ", h.Session().Text())
	assert.Equal(t, keyboard.Closed, h.Session().State())
	assert.Contains(t, out.String(), "keyboard ready")
	assert.Contains(t, out.String(), "keyboard closed")
	require.NotEmpty(t, saved)
	assert.Equal(t, "then ", saved[len(saved)-1])
}

func TestHandleLineCommands(t *testing.T) {
	var out bytes.Buffer
	var saved []string
	h := newTestHandler(&out, &saved)
	h.session.Focus()

	testCases := []struct {
		line     string
		expected string
	}{
		{"hi there", "hi there"},
		{":bs", "hi ther"},
		{":sp", "hi ther "},
		{":nl", "hi ther \n"},
		{":9", "hi ther \n"},
		{":nope", "hi ther \n"},
		{":text", "hi ther \n"},
	}
	for _, tc := range testCases {
		assert.False(t, h.handleLine(tc.line), tc.line)
		assert.Equal(t, tc.expected, h.session.Text(), tc.line)
	}
	assert.True(t, h.handleLine(":q"))
}

func TestStatsAndScores(t *testing.T) {
	var out bytes.Buffer
	var saved []string
	h := newTestHandler(&out, &saved)
	h.opts.ShowScores = true
	h.session.Focus()

	h.handleLine("th")
	assert.Contains(t, out.String(), "score:")

	h.handleLine(":stats")
	assert.Contains(t, out.String(), "words: 4")
}

func TestRunEOFClosesSession(t *testing.T) {
	var out bytes.Buffer
	var saved []string
	h := newTestHandler(&out, &saved)

	require.NoError(t, h.Run(strings.NewReader("a")))
	assert.Equal(t, keyboard.Closed, h.Session().State())
	assert.Equal(t, "a", saved[len(saved)-1])
}
