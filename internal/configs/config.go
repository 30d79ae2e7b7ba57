package configs

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/utils"
	"github.com/google/uuid"
)

const (
	DefaultWorkers = 4
	MaxWorkers     = 64
)

type UserConfig struct {
	User     User     `toml:"user"`
	Defaults Defaults `toml:"defaults"`
}

type User struct {
	InstallationID string `toml:"installation_id"`
	DeviceName     string `toml:"device_name"`
}

// Defaults are applied to commands when the matching flag is not given.
type Defaults struct {
	OutputDir string `toml:"output_dir"`
	Overwrite bool   `toml:"overwrite"`
	Workers   int    `toml:"workers"`
	Audit     bool   `toml:"audit"`
}

// DefaultUserConfig is the configuration used when no file exists. Keys
// missing from a file keep these values.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Defaults: Defaults{
			Workers: DefaultWorkers,
			Audit:   true,
		},
	}
}

// LoadUserConfig loads the user configuration from the config file.
func LoadUserConfig() (*UserConfig, error) {
	configPath := UserFortressSettings.ConfigFilePath()

	config := DefaultUserConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Defaults.Workers < 1 || config.Defaults.Workers > MaxWorkers {
		config.Defaults.Workers = DefaultWorkers
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(UserFortressSettings.ConfigFilePath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// GenerateInstallationID generates a new installation id.
func GenerateInstallationID() string {
	return uuid.New().String()
}

// EnsureUserConfig loads the user configuration, filling in and persisting
// the installation id and device name on first use.
func EnsureUserConfig() (*UserConfig, error) {
	config, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}

	changed := false
	if config.User.InstallationID == "" {
		config.User.InstallationID = GenerateInstallationID()
		changed = true
	}
	if config.User.DeviceName == "" {
		name, err := utils.GenerateDeviceName(nil)
		if err != nil {
			name = "device"
		}
		config.User.DeviceName = name
		changed = true
	}

	if changed {
		if err := SaveUserConfig(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

type setter func(c *UserConfig, value string) error

var setters = map[string]setter{
	"user.device_name": func(c *UserConfig, value string) error {
		c.User.DeviceName = utils.SanitizeDeviceName(value)
		return nil
	},
	"defaults.output_dir": func(c *UserConfig, value string) error {
		c.Defaults.OutputDir = strings.TrimSpace(value)
		return nil
	},
	"defaults.overwrite": func(c *UserConfig, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: overwrite must be true or false", kerrors.ErrInvalidConfigValue)
		}
		c.Defaults.Overwrite = b
		return nil
	},
	"defaults.workers": func(c *UserConfig, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > MaxWorkers {
			return fmt.Errorf("%w: workers must be a number between 1 and %d", kerrors.ErrInvalidConfigValue, MaxWorkers)
		}
		c.Defaults.Workers = n
		return nil
	},
	"defaults.audit": func(c *UserConfig, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: audit must be true or false", kerrors.ErrInvalidConfigValue)
		}
		c.Defaults.Audit = b
		return nil
	},
}

// SettableKeys lists the keys accepted by SetValue, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue updates a single dotted key. The config is not saved.
func (c *UserConfig) SetValue(key, value string) error {
	set, ok := setters[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("%w: %q (valid keys: %s)", kerrors.ErrInvalidConfigKey, key, strings.Join(SettableKeys(), ", "))
	}
	return set(c, value)
}
