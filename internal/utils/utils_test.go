package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-45000:   "-45,000",
		50000000: "50,000,000",
	}
	for n, expected := range testCases {
		if got := FormatWithCommas(n); got != expected {
			t.Errorf("FormatWithCommas(%d): expected %q, got %q", n, expected, got)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	testCases := []struct {
		s        string
		n        int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"héllo", 2, "h…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tc := range testCases {
		if got := TruncateRunes(tc.s, tc.n); got != tc.expected {
			t.Errorf("TruncateRunes(%q, %d): expected %q, got %q", tc.s, tc.n, tc.expected, got)
		}
	}
}

func TestRuneHelpers(t *testing.T) {
	if !IsSingleRune("ü") || IsSingleRune("ab") || IsSingleRune("") || IsSingleRune("\t") {
		t.Error("IsSingleRune misclassified input")
	}
	if !ContainsWhitespace("a b") || !ContainsWhitespace("a\n") || ContainsWhitespace("ab") {
		t.Error("ContainsWhitespace misclassified input")
	}
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("The")
	for _, w := range []string{"the", "then", "THEN", "", "there"} {
		f.ShouldInclude(w)
	}
	if f.Seen() != 2 {
		t.Errorf("expected 2 distinct words, got %d", f.Seen())
	}
}

func TestCreateRankList(t *testing.T) {
	ranks := CreateRankList(3)
	if len(ranks) != 3 || ranks[0] != 1 || ranks[2] != 3 {
		t.Errorf("unexpected ranks %v", ranks)
	}
	if len(CreateRankList(0)) != 0 {
		t.Error("expected empty rank list")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "file.bin")
	if err := WriteFileAtomic(path, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("two")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "two" {
		t.Errorf("expected replaced contents, got %q (%v)", data, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new")
	result := CheckDirStatus(dir)
	if !result.Exists || !result.Writable || result.Error != nil {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestExtractHelpers(t *testing.T) {
	data := map[string]any{
		"section": map[string]any{"n": int64(4), "b": true, "s": "x", "bad": "4"},
	}
	section, ok := ExtractSection(data, "section")
	if !ok {
		t.Fatal("expected section")
	}
	if n, ok := ExtractInt64(section, "n"); !ok || n != 4 {
		t.Error("ExtractInt64 failed")
	}
	if _, ok := ExtractInt64(section, "bad"); ok {
		t.Error("ExtractInt64 accepted a string")
	}
	if b, ok := ExtractBool(section, "b"); !ok || !b {
		t.Error("ExtractBool failed")
	}
	if s, ok := ExtractString(section, "s"); !ok || s != "x" {
		t.Error("ExtractString failed")
	}
}
