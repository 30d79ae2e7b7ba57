package cmd

import (
	"strings"
	"testing"
)

// firstLine returns the command's stdout result, ahead of any stderr output.
func firstLine(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	return strings.TrimSpace(line)
}

func TestTextCommand_RoundTripThroughStdin(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "text", "encrypt", "meet at noon")
	if err != nil {
		t.Fatalf("text encrypt returned error: %v\n%s", err, output)
	}
	blob := firstLine(output)
	if blob == "" || strings.Contains(blob, "meet at noon") {
		t.Fatalf("Expected an encrypted blob, got: %q", blob)
	}

	withStdin(t, blob+"\n")
	output, err = runCLI(t, "text", "decrypt")
	if err != nil {
		t.Fatalf("text decrypt returned error: %v\n%s", err, output)
	}
	if got := firstLine(output); got != "meet at noon" {
		t.Errorf("Expected decrypted text, got %q", got)
	}
}

func TestTextCommand_EncryptFromStdinDash(t *testing.T) {
	setupTestEnvironment(t)
	withStdin(t, "line one\nline two\n")

	output, err := runCLI(t, "text", "encrypt", "-")
	if err != nil {
		t.Fatalf("text encrypt returned error: %v", err)
	}
	blob := firstLine(output)

	output, err = runCLI(t, "text", "decrypt", blob)
	if err != nil {
		t.Fatalf("text decrypt returned error: %v", err)
	}
	if !strings.HasPrefix(output, "line one\nline two\n") {
		t.Errorf("Expected both lines without the trailing newline doubled, got %q", output)
	}
}

func TestTextCommand_WrongKey(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "text", "encrypt", "secret")
	if err != nil {
		t.Fatalf("text encrypt returned error: %v", err)
	}
	blob := firstLine(output)

	otherKey := strings.Repeat("ab", 32)
	output, err = runCLI(t, "text", "decrypt", blob, "--key", otherKey)
	if err != nil {
		t.Fatalf("Wrong key should be reported, not returned: %v", err)
	}
	if !strings.Contains(output, "decryption failed") {
		t.Errorf("Expected decryption failure, got: %s", output)
	}
	if strings.Contains(output, "secret\n") {
		t.Error("Plaintext must not be printed on failure")
	}
}

func TestTextCommand_InvalidBlob(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "text", "decrypt", "not base64!")
	if err != nil {
		t.Fatalf("text decrypt returned error: %v", err)
	}
	if !strings.Contains(output, "invalid or corrupt") {
		t.Errorf("Expected corrupt container message, got: %s", output)
	}
}
