package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "out.png")

	if err := fs.WriteFile(path, []byte("pixels")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("expected %q, got %q", "pixels", data)
	}
}

func TestFileSystem_WriteFileReplacesAndLeavesNoTemp(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	if err := fs.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("expected %q, got %q", "second", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file, got %d entries", len(entries))
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.png")

	if err := fs.WriteFile(path, []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_MkdirAllAndExists(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "steps", "nested")

	if err := fs.MkdirAll(path); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if exists, _ := fs.Exists(path); !exists {
		t.Error("expected directory to exist")
	}
	if exists, _ := fs.Exists(filepath.Join(dir, "missing")); exists {
		t.Error("expected missing path to not exist")
	}
}

func TestFileSystem_Glob(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.png", "c.jpg"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644)
	}
	os.Mkdir(filepath.Join(dir, "d.png"), 0755)

	files, err := fs.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if filepath.Base(files[0]) != "a.png" || filepath.Base(files[1]) != "b.png" {
		t.Errorf("expected sorted [a.png b.png], got %v", files)
	}

	if _, err := fs.Glob("[" + dir); err == nil {
		t.Error("expected error for malformed pattern")
	}
}
