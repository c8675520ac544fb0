package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobscout/internal/domain/history"
)

// Ensure Store implements history.Repository
var _ history.Repository = (*Store)(nil)

// Store persists seen keys as newline-delimited text
type Store struct {
	path string
}

// NewStore builds a file-backed store
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: path is required")
	}
	return &Store{path: path}, nil
}

// Load reads all persisted keys. A missing file is an empty set.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("file store: read %s: %w", s.path, err)
	}

	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			keys = append(keys, line)
		}
	}

	return keys, nil
}

// Save replaces the stored set with keys, one per line, sorted. The write
// goes through a temp file and rename.
func (s *Store) Save(ctx context.Context, keys []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("file store: create dir: %w", err)
	}

	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	var b strings.Builder
	for _, k := range sorted {
		b.WriteString(k)
		b.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("file store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file store: rename: %w", err)
	}

	return nil
}

// Clear removes the file; a file already absent counts as cleared
func (s *Store) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("file store: remove %s: %w", s.path, err)
	}
	return nil
}
