package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lyrics.txt")

	if err := WriteFileOverwrite(path, []byte("first version, longer"), 0644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := WriteFileOverwrite(path, []byte("second"), 0644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("expected truncated content 'second', got %q", got)
	}
}

func TestWriteFileOverwriteMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "lyrics.txt")
	if err := WriteFileOverwrite(path, []byte("x"), 0644); err == nil {
		t.Error("expected an error when the parent directory does not exist")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	path := filepath.Join(dir, "song.txt")

	if err := WriteFileAtomic(path, []byte("[Chorus]\nla la"), 0644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "[Chorus]\nla la" {
		t.Errorf("unexpected content %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file to remain, found %d entries", len(entries))
	}
}
