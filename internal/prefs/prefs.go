// Package prefs is a tiny persisted key-value store backed by a KEY=VALUE
// file, the same format the config loader reads. It holds the handful of
// user flags that survive restarts.
package prefs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Known preference keys.
const (
	KeyDarkMode     = "dark_mode"
	KeyLampOnLaunch = "lamp_on_launch"
)

// Store reads and writes preferences. Safe for concurrent use.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the preferences file at path. A missing file is not an error;
// it yields an empty store that creates the file on first Set.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		s.values[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading prefs file: %w", err)
	}

	return s, nil
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// GetBool returns the value for key interpreted as a boolean flag; absent
// or unrecognized values read as false.
func (s *Store) GetBool(key string) bool {
	v, ok := s.Get(key)
	return ok && (v == "true" || v == "1")
}

// Set stores key=value and rewrites the file. The write goes through a
// temporary file and rename, so a crash never leaves a half-written store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, s.values[k])
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write prefs file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace prefs file: %w", err)
	}
	return nil
}

// SetBool stores a boolean flag.
func (s *Store) SetBool(key string, value bool) error {
	if value {
		return s.Set(key, "true")
	}
	return s.Set(key, "false")
}

// Path returns the absolute location of the backing file, for log messages.
func (s *Store) Path() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return s.path
	}
	return abs
}
