package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/fortress/internal/configs"
)

const (
	testPassword    = "correct horse battery staple"
	testSecurityKey = "3b7e151628aed2a6abf7158809cf4f3c3b7e151628aed2a6abf7158809cf4f3c"
)

// setupTestEnvironment isolates user settings in a temp directory, supplies
// credentials through the environment and disables terminal prompts. It
// returns a working directory for test files.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	original := *configs.UserFortressSettings
	configs.UserFortressSettings.UserConfigsPath = filepath.Join(tempDir, "config")
	configs.UserFortressSettings.UserDataPath = filepath.Join(tempDir, "data")
	configs.UserFortressSettings.Username = "testuser"

	originalIsTerminal, originalIsTTYAvailable := isTerminal, isTTYAvailable
	isTerminal = func() bool { return false }
	isTTYAvailable = func() bool { return false }

	t.Cleanup(func() {
		*configs.UserFortressSettings = original
		isTerminal, isTTYAvailable = originalIsTerminal, originalIsTTYAvailable
		ResetGlobalState()
	})

	t.Setenv("NO_COLOR", "1")
	t.Setenv(passwordEnv, testPassword)
	t.Setenv(securityKeyEnv, testSecurityKey)

	workDir := filepath.Join(tempDir, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}
	return workDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// runCLI executes the real root command with fresh flag state.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	if args == nil {
		args = []string{}
	}

	return captureOutput(func() error {
		ResetGlobalState()
		rootCmd := GetRootCmd()
		rootCmd.SetArgs(args)
		return rootCmd.Execute()
	})
}

// withStdin replaces os.Stdin with a pipe carrying content.
func withStdin(t *testing.T, content string) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := writer.WriteString(content); err != nil {
		t.Fatalf("Failed to write stdin: %v", err)
	}
	writer.Close()

	original := os.Stdin
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = original
		reader.Close()
	})
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
