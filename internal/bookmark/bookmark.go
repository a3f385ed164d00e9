// Package bookmark persists reading positions keyed by content
// fingerprint, so a renamed or moved file resumes where it left off.
package bookmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Bookmark records one saved reading position. Last write wins per
// fingerprint.
type Bookmark struct {
	Chapter    int       `json:"chapter"`
	ScrollLine int       `json:"scroll_line"`
	Mode       string    `json:"mode"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store reads and writes the bookmark file.
type Store struct {
	path string
}

const (
	defaultDirName = ".quietread"
	fileName       = "bookmarks.json"
)

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, fileName)}
}

// DefaultStore roots the store in the user's home directory.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	return NewStore(filepath.Join(home, defaultDirName)), nil
}

// Get returns the bookmark for a fingerprint, or false when none is
// saved.
func (s *Store) Get(fingerprint string) (Bookmark, bool) {
	all := s.loadAll()
	bm, ok := all[fingerprint]
	return bm, ok
}

// Put saves a bookmark, stamping the current time.
func (s *Store) Put(fingerprint string, bm Bookmark) error {
	all := s.loadAll()
	bm.Timestamp = time.Now().UTC()
	all[fingerprint] = bm
	return s.saveAll(all)
}

// Entry pairs a bookmark with its fingerprint key for listings.
type Entry struct {
	Fingerprint string `json:"fingerprint"`
	Bookmark
}

// List returns all saved bookmarks, most recent first.
func (s *Store) List() []Entry {
	all := s.loadAll()
	entries := make([]Entry, 0, len(all))
	for key, bm := range all {
		entries = append(entries, Entry{Fingerprint: key, Bookmark: bm})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

// loadAll reads the bookmark map. A missing or corrupt file reads as
// empty; bookmarks are best-effort state, not precious data.
func (s *Store) loadAll() map[string]Bookmark {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]Bookmark{}
	}
	var all map[string]Bookmark
	if err := json.Unmarshal(data, &all); err != nil || all == nil {
		return map[string]Bookmark{}
	}
	return all
}

func (s *Store) saveAll(all map[string]Bookmark) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create bookmark dir: %w", err)
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	return nil
}
