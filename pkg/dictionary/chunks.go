package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

const chunkPattern = "dict_*.bin"

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

type chunkSource struct {
	name     string
	files    []string
	maxWords int
}

// ChunkDir reads every dict_NNNN.bin file in dir, in ID order, stopping once
// maxWords words were read (0 reads everything).
func ChunkDir(dir string, maxWords int) Source {
	return &chunkSource{name: dir, maxWords: maxWords}
}

// ChunkFile reads a single chunk file.
func ChunkFile(path string) Source {
	return &chunkSource{name: path, files: []string{path}}
}

func (s *chunkSource) Name() string { return s.name }

func (s *chunkSource) Words() ([]string, error) {
	files := s.files
	if files == nil {
		chunks, err := AvailableChunks(s.name)
		if err != nil {
			return nil, err
		}
		if len(chunks) == 0 {
			return nil, fmt.Errorf("no chunk files found in %s", s.name)
		}
		for _, c := range chunks {
			files = append(files, c.Filename)
		}
	}

	var words []string
	for _, f := range files {
		if s.maxWords > 0 && len(words) >= s.maxWords {
			break
		}
		chunkWords, err := readChunk(f)
		if err != nil {
			return nil, err
		}
		words = append(words, chunkWords...)
	}
	if s.maxWords > 0 && len(words) > s.maxWords {
		words = words[:s.maxWords]
	}
	return words, nil
}

// AvailableChunks scans dir for chunk files sorted by ID.
func AvailableChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, chunkPattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: wordCount})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

type rankedWord struct {
	word string
	rank uint16
}

// readChunk returns the words of one chunk ordered by rank.
func readChunk(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 {
		return nil, fmt.Errorf("invalid word count in %s: %d", filename, totalEntries)
	}

	entries := make([]rankedWord, 0, totalEntries)
	for len(entries) < int(totalEntries) {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}
		entries = append(entries, rankedWord{word: string(wordBytes), rank: rank})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rank < entries[j].rank
	})

	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.word
	}
	log.Debugf("Chunk %s loaded: %d words", filename, len(words))
	return words, nil
}

// WriteChunks writes words into dir as dict_0001.bin, dict_0002.bin, ...
// holding at most chunkSize words each. A word's rank is its position in
// words plus one, capped at the uint16 range. Returns the number of files.
func WriteChunks(dir string, words []string, chunkSize int) (int, error) {
	if chunkSize <= 0 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	files := 0
	for start := 0; start < len(words); start += chunkSize {
		end := min(start+chunkSize, len(words))
		files++
		filename := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", files))
		if err := writeChunk(filename, words[start:end], start); err != nil {
			return files - 1, err
		}
		log.Debugf("Wrote chunk %s with %d words", filename, end-start)
	}
	return files, nil
}

func writeChunk(filename string, words []string, offset int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", filename, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word too long for chunk format: %d bytes", len(word))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := w.WriteString(word); err != nil {
			return err
		}
		rank := min(offset+i+1, math.MaxUint16)
		if err := binary.Write(w, binary.LittleEndian, uint16(rank)); err != nil {
			return err
		}
	}
	return w.Flush()
}
