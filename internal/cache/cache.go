// Package cache keeps the last known token total per session so a statusline
// refresh without usage data can still show something.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Store is a session-keyed store of a single token total.
type Store interface {
	// Load returns the cached total for key. ok is false when there is no
	// usable value, whatever the reason.
	Load(key string) (tokens int, ok bool)
	Save(key string, tokens int) error
}

const filePrefix = "statusline_cache_"

// File stores each session's total as a decimal integer in its own file.
type File struct {
	Dir string
}

// NewFile returns a File store rooted at dir, or the OS temp dir when dir is
// empty.
func NewFile(dir string) *File {
	if dir == "" {
		dir = os.TempDir()
	}
	return &File{Dir: dir}
}

// Path returns the cache file for a session id.
func (f *File) Path(key string) string {
	return filepath.Join(f.Dir, filePrefix+sanitizeKey(key))
}

func (f *File) Load(key string) (int, bool) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		return 0, false
	}
	return parseTotal(string(data))
}

// Save writes through a temp file and a rename so concurrent readers never
// see a partial value. Concurrent writers for one session: last rename wins.
func (f *File) Save(key string, tokens int) error {
	if tokens < 0 {
		return fmt.Errorf("negative token total %d", tokens)
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	dst := f.Path(key)
	tmp, err := os.CreateTemp(f.Dir, filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.WriteString(strconv.Itoa(tokens)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cache: %w", err)
	}
	os.Chmod(tmp.Name(), 0644)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename cache: %w", err)
	}
	return nil
}

// parseTotal reads the leading decimal digits of s. Anything without digits,
// or a zero value, counts as no value.
func parseTotal(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// sanitizeKey keeps session ids from escaping the cache dir.
func sanitizeKey(key string) string {
	if key == "" {
		return "default"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.ReplaceAll(key, "..", "__"))
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]int
	// Err, when set, is returned by every Save.
	Err error
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]int)}
}

func (m *Memory) Load(key string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.entries[key]
	return n, ok
}

func (m *Memory) Save(key string, tokens int) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]int)
	}
	m.entries[key] = tokens
	return nil
}
