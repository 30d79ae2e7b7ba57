package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/fortress/internal/configs"
)

func TestConfigInit_CreatesConfig(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "init", "--device", "Work Laptop")
	if err != nil {
		t.Fatalf("config init returned error: %v", err)
	}
	if !strings.Contains(output, "Configuration saved") {
		t.Errorf("Expected confirmation, got: %s", output)
	}

	cfg, err := configs.LoadUserConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.User.InstallationID == "" {
		t.Error("Expected installation id to be generated")
	}
	if cfg.User.DeviceName != "work-laptop" {
		t.Errorf("Expected sanitized device name, got %q", cfg.User.DeviceName)
	}

	output, err = runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("second config init returned error: %v", err)
	}
	if !strings.Contains(output, "already exists") {
		t.Errorf("Expected existing config message, got: %s", output)
	}
}

func TestConfigSet_UpdatesValues(t *testing.T) {
	setupTestEnvironment(t)

	tests := []struct {
		key, value string
		check      func(c *configs.UserConfig) bool
	}{
		{"defaults.workers", "8", func(c *configs.UserConfig) bool { return c.Defaults.Workers == 8 }},
		{"defaults.overwrite", "true", func(c *configs.UserConfig) bool { return c.Defaults.Overwrite }},
		{"defaults.audit", "false", func(c *configs.UserConfig) bool { return !c.Defaults.Audit }},
		{"defaults.output_dir", "/tmp/vault", func(c *configs.UserConfig) bool { return c.Defaults.OutputDir == "/tmp/vault" }},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			output, err := runCLI(t, "config", "set", tc.key, tc.value)
			if err != nil {
				t.Fatalf("config set returned error: %v", err)
			}
			if !strings.Contains(output, "Set") {
				t.Errorf("Expected confirmation, got: %s", output)
			}

			cfg, err := configs.LoadUserConfig()
			if err != nil {
				t.Fatalf("Failed to load config: %v", err)
			}
			if !tc.check(cfg) {
				t.Errorf("%s was not applied: %+v", tc.key, cfg.Defaults)
			}
		})
	}
}

func TestConfigSet_RejectsInvalidInput(t *testing.T) {
	setupTestEnvironment(t)

	tests := []struct {
		name       string
		key, value string
		want       string
	}{
		{"unknown key", "defaults.colour", "blue", "unknown configuration key"},
		{"workers out of range", "defaults.workers", "0", "invalid configuration value"},
		{"bad bool", "defaults.audit", "maybe", "invalid configuration value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := runCLI(t, "config", "set", tc.key, tc.value)
			if err != nil {
				t.Fatalf("config set returned error: %v", err)
			}
			if !strings.Contains(output, tc.want) {
				t.Errorf("Expected %q, got: %s", tc.want, output)
			}
		})
	}
}

func TestConfigShow_JSON(t *testing.T) {
	setupTestEnvironment(t)

	if _, err := runCLI(t, "config", "set", "defaults.workers", "12"); err != nil {
		t.Fatalf("config set returned error: %v", err)
	}

	output, err := runCLI(t, "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}

	var shown configOutput
	if err := json.Unmarshal([]byte(output), &shown); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, output)
	}
	if shown.Workers != 12 {
		t.Errorf("Expected workers 12, got %d", shown.Workers)
	}
	if shown.InstallationID == "" {
		t.Error("config set should create the installation id")
	}
	if !shown.Audit {
		t.Error("Audit should default to true")
	}
}

func TestConfigShow_NoConfig(t *testing.T) {
	setupTestEnvironment(t)

	output, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show returned error: %v", err)
	}
	if !strings.Contains(output, "not set") || !strings.Contains(output, "fortress config init") {
		t.Errorf("Expected defaults with init hint, got: %s", output)
	}
}
