/*
Package store persists notes for the keyboard sessions.

Two layouts are supported over a string key/value PropertyStore: the slot
schema (note_count plus note_{i}_* keys per note) used when the host exposes
properties, and a single JSON array under "stickyNotes" used as the local
storage fallback.
*/
package store

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// PropertyStore is a string key/value store. Missing keys read as "".
type PropertyStore interface {
	GetProperty(key string) (string, bool)
	SetProperty(key, value string) error
}

// MemoryProperties keeps properties in memory.
type MemoryProperties struct {
	mu    sync.RWMutex
	props map[string]string
}

// NewMemoryProperties creates an empty in-memory store.
func NewMemoryProperties() *MemoryProperties {
	return &MemoryProperties{props: make(map[string]string)}
}

func (m *MemoryProperties) GetProperty(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.props[key]
	return v, ok
}

func (m *MemoryProperties) SetProperty(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[key] = value
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryProperties) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.props))
	for k := range m.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileProperties is a PropertyStore persisted as a msgpack map. Every set
// rewrites the file atomically.
type FileProperties struct {
	mu    sync.RWMutex
	path  string
	props map[string]string
}

// OpenFileProperties loads path, starting empty when the file does not exist.
func OpenFileProperties(path string) (*FileProperties, error) {
	fp := &FileProperties{path: path, props: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debugf("Property file %s not found, starting empty", path)
		return fp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read property file: %w", err)
	}
	if len(data) == 0 {
		return fp, nil
	}
	if err := msgpack.Unmarshal(data, &fp.props); err != nil {
		return nil, fmt.Errorf("failed to decode property file %s: %w", path, err)
	}
	if fp.props == nil {
		fp.props = make(map[string]string)
	}
	log.Debugf("Loaded %d properties from %s", len(fp.props), path)
	return fp, nil
}

func (fp *FileProperties) GetProperty(key string) (string, bool) {
	fp.mu.RLock()
	defer fp.mu.RUnlock()
	v, ok := fp.props[key]
	return v, ok
}

func (fp *FileProperties) SetProperty(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()

	prev, existed := fp.props[key]
	if existed && prev == value {
		return nil
	}
	fp.props[key] = value
	if err := fp.flush(); err != nil {
		if existed {
			fp.props[key] = prev
		} else {
			delete(fp.props, key)
		}
		return err
	}
	return nil
}

func (fp *FileProperties) flush() error {
	data, err := msgpack.Marshal(fp.props)
	if err != nil {
		return fmt.Errorf("failed to encode properties: %w", err)
	}
	if err := utils.WriteFileAtomic(fp.path, data); err != nil {
		return fmt.Errorf("failed to write property file: %w", err)
	}
	return nil
}

// SetProperties writes several keys with one file rewrite.
func (fp *FileProperties) SetProperties(values map[string]string) error {
	for k := range values {
		if k == "" {
			return ErrEmptyKey
		}
	}
	fp.mu.Lock()
	defer fp.mu.Unlock()

	prev := make(map[string]string, len(fp.props))
	for k, v := range fp.props {
		prev[k] = v
	}
	for k, v := range values {
		fp.props[k] = v
	}
	if err := fp.flush(); err != nil {
		fp.props = prev
		return err
	}
	return nil
}

// batchSetter is implemented by stores that can apply many keys at once.
type batchSetter interface {
	SetProperties(values map[string]string) error
}

func setAll(ps PropertyStore, values map[string]string) error {
	if b, ok := ps.(batchSetter); ok {
		return b.SetProperties(values)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ps.SetProperty(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
