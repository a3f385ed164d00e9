package document

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFingerprint(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(a, []byte("same bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fp, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fp) != 8 {
		t.Errorf("expected 8 hex chars, got %q", fp)
	}

	// Same content under another name hashes identically.
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(b, []byte("same bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	fpB, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp != fpB {
		t.Errorf("content-identical files differ: %q vs %q", fp, fpB)
	}

	c := filepath.Join(dir, "c.txt")
	if err := os.WriteFile(c, []byte("other bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	fpC, err := Fingerprint(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fp == fpC {
		t.Error("different content produced the same fingerprint")
	}
}

func TestFingerprintMissingFile(t *testing.T) {
	if _, err := Fingerprint(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error")
	}
}
