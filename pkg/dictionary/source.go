package dictionary

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords string

// Source produces an ordered word list.
type Source interface {
	Name() string
	Words() ([]string, error)
}

type staticSource struct {
	name  string
	words []string
}

// Static wraps an in-memory list, e.g. one handed over by the host process.
func Static(name string, words []string) Source {
	return &staticSource{name: name, words: words}
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Words() ([]string, error) {
	return s.words, nil
}

// Embedded returns the word list compiled into the binary.
func Embedded() Source {
	return &staticSource{name: "embedded", words: parseLines(embeddedWords)}
}

type textSource struct {
	path string
}

// TextFile reads one word per line. Blank lines and lines starting
// with '#' are skipped.
func TextFile(path string) Source {
	return &textSource{path: path}
}

func (s *textSource) Name() string { return s.path }

func (s *textSource) Words() ([]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", s.path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if w, ok := parseLine(scanner.Text()); ok {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", s.path, err)
	}
	return words, nil
}

func parseLines(data string) []string {
	lines := strings.Split(data, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		if w, ok := parseLine(line); ok {
			words = append(words, w)
		}
	}
	return words
}

func parseLine(line string) (string, bool) {
	w := strings.TrimSpace(line)
	if w == "" || strings.HasPrefix(w, "#") {
		return "", false
	}
	return strings.ToLower(w), true
}
