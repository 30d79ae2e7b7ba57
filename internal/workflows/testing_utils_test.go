package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/fortress/internal/configs"
)

var testCreds = Credentials{
	Password:    "correct horse battery staple",
	SecurityKey: "3b7e151628aed2a6abf7158809cf4f3c3b7e151628aed2a6abf7158809cf4f3c",
}

// setupWorkflowEnv isolates user settings in a temp directory and returns a
// separate working directory for test files.
func setupWorkflowEnv(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	original := *configs.UserFortressSettings
	configs.UserFortressSettings.UserConfigsPath = filepath.Join(tempDir, "config")
	configs.UserFortressSettings.UserDataPath = filepath.Join(tempDir, "data")
	t.Cleanup(func() {
		*configs.UserFortressSettings = original
	})

	workDir := filepath.Join(tempDir, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}
	return workDir
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

func saveTestConfig(t *testing.T, mutate func(c *configs.UserConfig)) {
	t.Helper()

	config := configs.DefaultUserConfig()
	mutate(config)
	if err := configs.SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}
}
