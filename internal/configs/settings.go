package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/fortress/internal/utils"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var UserFortressSettings *UserSettings

func init() {
	settings, err := resolveUserSettings()
	if err != nil {
		log.Fatalf("error resolving user settings: %s", err)
	}
	UserFortressSettings = settings
}

// resolveUserSettings honours XDG_CONFIG_HOME and XDG_DATA_HOME before
// falling back to the platform defaults.
func resolveUserSettings() (*UserSettings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return nil, err
		}
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	return &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "fortress"),
		UserDataPath:    filepath.Join(dataDir, "fortress"),
		Username:        username,
	}, nil
}

// ConfigFilePath is where the user config lives.
func (s *UserSettings) ConfigFilePath() string {
	return filepath.Join(s.UserConfigsPath, "config.toml")
}

// AuditLogPath is where the audit trail is appended.
func (s *UserSettings) AuditLogPath() string {
	return filepath.Join(s.UserDataPath, "audit.jsonl")
}
