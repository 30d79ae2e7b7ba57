package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("CreatesFileWithMode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.bin")

		if err := WriteFileAtomic(path, []byte("payload"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != "payload" {
			t.Errorf("Expected payload, got %q", data)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("Expected mode 0600, got %o", perm)
		}
	})

	t.Run("ReplacesExistingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.bin")
		if err := os.WriteFile(path, []byte("old content that is longer"), 0644); err != nil {
			t.Fatalf("Failed to seed file: %v", err)
		}

		if err := WriteFileAtomic(path, []byte("new"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if string(data) != "new" {
			t.Errorf("Expected new, got %q", data)
		}
	})

	t.Run("CreatesParentDirectories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "out.bin")

		if err := WriteFileAtomic(path, nil, 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}
		if !FileExists(path) {
			t.Error("Expected file to exist")
		}
	})

	t.Run("LeavesNoTempFiles", func(t *testing.T) {
		dir := t.TempDir()

		if err := WriteFileAtomic(filepath.Join(dir, "out.bin"), []byte("x"), 0600); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("Expected only the output file, got %d entries", len(entries))
		}
	})

	t.Run("FailsWhenTargetIsDirectory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "taken")
		if err := os.Mkdir(target, 0700); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(target, "child"), []byte("x"), 0600); err != nil {
			t.Fatalf("Failed to create child: %v", err)
		}

		if err := WriteFileAtomic(target, []byte("x"), 0600); err == nil {
			t.Fatal("Expected error when target is a non-empty directory")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("Expected temp file to be cleaned up, got %d entries", len(entries))
		}
	})
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, nil, 0600); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	if !FileExists(path) {
		t.Error("Expected file to exist")
	}
	if !FileExists(dir) {
		t.Error("Expected directory to exist")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("Expected missing file not to exist")
	}
}
