package bookmark

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPutGetRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	bm := Bookmark{
		Chapter:    3,
		ScrollLine: 120,
		Mode:       "log",
		FileName:   "novel.epub",
		FilePath:   "/books/novel.epub",
	}
	if err := store.Put("abcd1234", bm); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := store.Get("abcd1234")
	if !ok {
		t.Fatal("bookmark not found")
	}
	if got.Chapter != 3 || got.ScrollLine != 120 || got.Mode != "log" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.FileName != "novel.epub" || got.FilePath != "/books/novel.epub" {
		t.Errorf("file fields mismatch: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp not stamped on put")
	}
}

func TestGetUnknownFingerprint(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, ok := store.Get("missing"); ok {
		t.Error("expected no bookmark")
	}
}

func TestPutLastWriteWins(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Put("ff00ff00", Bookmark{ScrollLine: 10}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put("ff00ff00", Bookmark{ScrollLine: 99}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, ok := store.Get("ff00ff00")
	if !ok {
		t.Fatal("bookmark not found")
	}
	if got.ScrollLine != 99 {
		t.Errorf("expected latest write, got scroll line %d", got.ScrollLine)
	}

	if entries := store.List(); len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestPutKeepsOtherEntries(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Put("aaaa0000", Bookmark{Chapter: 1}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put("bbbb1111", Bookmark{Chapter: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, ok := store.Get("aaaa0000"); !ok {
		t.Error("first entry lost after second put")
	}
	if len(store.List()) != 2 {
		t.Errorf("expected 2 entries, got %d", len(store.List()))
	}
}

func TestListNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Put("older111", Bookmark{FileName: "old.txt"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := store.Put("newer222", Bookmark{FileName: "new.txt"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	entries := store.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fingerprint != "newer222" {
		t.Errorf("expected newest first, got %q", entries[0].Fingerprint)
	}
}

func TestCorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bookmarks.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store := NewStore(dir)
	if _, ok := store.Get("anything"); ok {
		t.Error("corrupt file should read as empty")
	}
	if len(store.List()) != 0 {
		t.Error("corrupt file should list no entries")
	}

	// Writing through the store recovers the file.
	if err := store.Put("cafe0000", Bookmark{Chapter: 5}); err != nil {
		t.Fatalf("put over corrupt file: %v", err)
	}
	if got, ok := store.Get("cafe0000"); !ok || got.Chapter != 5 {
		t.Errorf("recovery failed: %+v ok=%v", got, ok)
	}
}

func TestStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewStore(dir)

	if err := store.Put("00112233", Bookmark{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bookmarks.json")); err != nil {
		t.Errorf("bookmark file not created: %v", err)
	}
}
