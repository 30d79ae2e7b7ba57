package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// encryptForTest encrypts src through the CLI and removes the original.
func encryptForTest(t *testing.T, src string) string {
	t.Helper()

	output, err := runCLI(t, "encrypt", src)
	if err != nil {
		t.Fatalf("encrypt returned error: %v\n%s", err, output)
	}
	if err := os.Remove(src); err != nil {
		t.Fatalf("Failed to remove source: %v", err)
	}
	return src + ".fortress"
}

func TestDecryptCommand_RestoresFiles(t *testing.T) {
	workDir := setupTestEnvironment(t)
	src := writeTestFile(t, workDir, "photos/cat.jpg", "\xff\xd8\xff\xe0 not really a jpeg")
	container := encryptForTest(t, src)

	output, err := runCLI(t, "decrypt", filepath.Join(workDir, "photos"))
	if err != nil {
		t.Fatalf("decrypt returned error: %v\n%s", err, output)
	}

	if !strings.Contains(output, "Decrypted 1 file(s)") {
		t.Errorf("Expected success message, got: %s", output)
	}
	if got := readTestFile(t, src); got != "\xff\xd8\xff\xe0 not really a jpeg" {
		t.Errorf("Decrypted content mismatch: %q", got)
	}
	if _, err := os.Stat(container); err != nil {
		t.Error("Container should be left in place")
	}
}

func TestDecryptCommand_UsesStoredName(t *testing.T) {
	workDir := setupTestEnvironment(t)
	src := writeTestFile(t, workDir, "original.pdf", "%PDF-1.7")
	container := encryptForTest(t, src)

	renamed := filepath.Join(workDir, "renamed.fortress")
	if err := os.Rename(container, renamed); err != nil {
		t.Fatalf("Failed to rename container: %v", err)
	}

	outDir := filepath.Join(workDir, "out")
	if _, err := runCLI(t, "decrypt", renamed, "-o", outDir); err != nil {
		t.Fatalf("decrypt returned error: %v", err)
	}

	if got := readTestFile(t, filepath.Join(outDir, "original.pdf")); got != "%PDF-1.7" {
		t.Errorf("Expected file restored under its stored name, got %q", got)
	}
}

func TestDecryptCommand_WrongPassword(t *testing.T) {
	workDir := setupTestEnvironment(t)
	src := writeTestFile(t, workDir, "a.txt", "a")
	container := encryptForTest(t, src)

	t.Setenv(passwordEnv, "not the password")
	output, err := runCLI(t, "decrypt", container)
	if err != nil {
		t.Fatalf("Wrong password should be reported, not returned: %v", err)
	}

	if !strings.Contains(output, "could not be decrypted") || !strings.Contains(output, "decryption failed") {
		t.Errorf("Expected decryption failure, got: %s", output)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("No plaintext should be written when decryption fails")
	}
}

func TestDecryptCommand_CorruptContainer(t *testing.T) {
	workDir := setupTestEnvironment(t)
	container := writeTestFile(t, workDir, "broken.fortress", "too short")

	output, err := runCLI(t, "decrypt", container)
	if err != nil {
		t.Fatalf("decrypt returned error: %v", err)
	}
	if !strings.Contains(output, "invalid or corrupt") {
		t.Errorf("Expected corrupt container message, got: %s", output)
	}
}

func TestDecryptCommand_DryRun(t *testing.T) {
	workDir := setupTestEnvironment(t)
	src := writeTestFile(t, workDir, "a.txt", "a")
	container := encryptForTest(t, src)
	t.Setenv(passwordEnv, "")

	output, err := runCLI(t, "decrypt", container, "--dry-run")
	if err != nil {
		t.Fatalf("dry run returned error: %v", err)
	}
	if !strings.Contains(output, "[dry-run]") || !strings.Contains(output, src) {
		t.Errorf("Expected planned output %s, got: %s", src, output)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Dry run should not write files")
	}
}

func TestDecryptCommand_NoMatches(t *testing.T) {
	workDir := setupTestEnvironment(t)

	output, err := runCLI(t, "decrypt", filepath.Join(workDir, "*.fortress"))
	if err != nil {
		t.Fatalf("decrypt returned error: %v", err)
	}
	if !strings.Contains(output, "no matching files found") {
		t.Errorf("Expected no files message, got: %s", output)
	}
}
