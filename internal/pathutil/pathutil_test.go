package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c1, err := Canonical(path)
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if !filepath.IsAbs(c1) {
		t.Fatalf("not absolute: %q", c1)
	}

	// relative spelling of the same file resolves identically
	wd, _ := os.Getwd()
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		t.Skipf("no relative form: %v", err)
	}
	c2, err := Canonical(rel)
	if err != nil {
		t.Fatalf("Canonical(rel): %v", err)
	}
	if c1 != c2 {
		t.Fatalf("canonical forms differ: %q vs %q", c1, c2)
	}
}

func TestCanonicalMissingFileExistingDir(t *testing.T) {
	dir := t.TempDir()
	c, err := Canonical(filepath.Join(dir, "not-yet-written.json"))
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if filepath.Base(c) != "not-yet-written.json" {
		t.Fatalf("base mangled: %q", c)
	}
}

func TestCanonicalMissingDirFails(t *testing.T) {
	if _, err := Canonical(filepath.Join(t.TempDir(), "no", "such", "dir", "f.txt")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCanonicalResolvesSymlinkedDir(t *testing.T) {
	real := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	path := filepath.Join(real, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c1, err := Canonical(path)
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	c2, err := Canonical(filepath.Join(link, "a.txt"))
	if err != nil {
		t.Fatalf("Canonical through symlink: %v", err)
	}
	if c1 != c2 {
		t.Fatalf("symlinked spellings differ: %q vs %q", c1, c2)
	}
}
