package configs

import (
	"os"
	"path/filepath"
	"testing"
)

type tomlFixture struct {
	Name    string
	Workers int
	Audit   bool
}

func TestSaveAndLoadTOML(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.toml")

	original := tomlFixture{Name: "vault", Workers: 3, Audit: true}
	if err := SaveTOML(testFile, original); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded tomlFixture
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loaded != original {
		t.Errorf("Expected %+v, got %+v", original, loaded)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data tomlFixture
	if err := LoadTOML(filepath.Join(t.TempDir(), "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "subdir", "test.toml")

	if err := SaveTOML(testFile, tomlFixture{Name: "Test"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	if _, err := os.Stat(testFile); os.IsNotExist(err) {
		t.Fatal("File was not created")
	}
}

func TestSaveTOMLTruncatesExisting(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.toml")

	if err := SaveTOML(testFile, tomlFixture{Name: "a much longer name than the next one"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}
	if err := SaveTOML(testFile, tomlFixture{Name: "short"}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded tomlFixture
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed after rewrite: %v", err)
	}
	if loaded.Name != "short" {
		t.Errorf("Expected name %q, got %q", "short", loaded.Name)
	}
}
