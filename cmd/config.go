package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/fortress/internal/configs"
	"github.com/PolarWolf314/fortress/internal/ui"
	"github.com/PolarWolf314/fortress/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configInitDeviceName string
	configShowJSON       bool
)

func init() {
	configInitCmd.Flags().StringVar(&configInitDeviceName, "device", "", "device name recorded in the audit log (defaults to hostname)")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
}

// resetConfigShowState resets the config commands' global state for testing.
func resetConfigShowState() {
	configInitDeviceName = ""
	configShowJSON = false
}

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage fortress configuration",
	Long: `Provides commands for managing the user configuration stored in
config.toml under your config directory.

Examples:
  # Create the configuration with a fresh installation id
  fortress config init

  # Show the current configuration
  fortress config show

  # Write encrypted files to a fixed directory by default
  fortress config set defaults.output_dir ~/vault`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the user configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		existed := utils.FileExists(configs.UserFortressSettings.ConfigFilePath())

		userConfig, err := configs.EnsureUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to initialize user config: %v", err)
		}

		if configInitDeviceName != "" {
			if err := userConfig.SetValue("user.device_name", configInitDeviceName); err != nil {
				fmt.Println(formatError(err))
				return nil
			}
			if err := configs.SaveUserConfig(userConfig); err != nil {
				return Logger.ErrorfAndReturn("Failed to save user config: %v", err)
			}
		}

		path := configs.UserFortressSettings.ConfigFilePath()
		if existed && configInitDeviceName == "" {
			fmt.Println(ui.Info.Sprint("ℹ") + " Configuration already exists at " + ui.Path.Sprint(path))
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Configuration saved to " + ui.Path.Sprint(path))
		fmt.Printf("  %-16s %s\n", "Installation ID:", ui.Highlight.Sprint(userConfig.User.InstallationID))
		fmt.Printf("  %-16s %s\n", "Device:", ui.Highlight.Sprint(userConfig.User.DeviceName))
		return nil
	},
}

type configOutput struct {
	Path           string `json:"path"`
	InstallationID string `json:"installation_id"`
	DeviceName     string `json:"device_name"`
	OutputDir      string `json:"output_dir"`
	Overwrite      bool   `json:"overwrite"`
	Workers        int    `json:"workers"`
	Audit          bool   `json:"audit"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		path := configs.UserFortressSettings.ConfigFilePath()
		Logger.Debugf("Loading user config from %s", path)
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		out := configOutput{
			Path:           path,
			InstallationID: userConfig.User.InstallationID,
			DeviceName:     userConfig.User.DeviceName,
			OutputDir:      userConfig.Defaults.OutputDir,
			Overwrite:      userConfig.Defaults.Overwrite,
			Workers:        userConfig.Defaults.Workers,
			Audit:          userConfig.Defaults.Audit,
		}

		if configShowJSON {
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(ui.Info.Sprint("User Configuration") + " " + ui.Muted.Sprint(path) + ":")
		fmt.Println()
		fmt.Printf("  %-16s %s\n", "Installation ID:", orUnset(out.InstallationID))
		fmt.Printf("  %-16s %s\n", "Device:", orUnset(out.DeviceName))
		fmt.Printf("  %-16s %s\n", "Output dir:", orUnset(out.OutputDir))
		fmt.Printf("  %-16s %t\n", "Overwrite:", out.Overwrite)
		fmt.Printf("  %-16s %d\n", "Workers:", out.Workers)
		fmt.Printf("  %-16s %t\n", "Audit log:", out.Audit)

		if out.InstallationID == "" {
			fmt.Println()
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("fortress config init") + " to create it")
		}
		return nil
	},
}

func orUnset(value string) string {
	if value == "" {
		return ui.Muted.Sprint("not set")
	}
	return ui.Highlight.Sprint(value)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Sets a single configuration value.

Keys:
  user.device_name     name recorded in the audit log
  defaults.output_dir  directory for encrypted and decrypted files
  defaults.overwrite   overwrite existing outputs without --force
  defaults.workers     files processed in parallel (1-64)
  defaults.audit       write the audit log (true or false)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config set command")
		key, value := args[0], args[1]

		userConfig, err := configs.EnsureUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		if err := userConfig.SetValue(key, value); err != nil {
			if isExpectedError(err) {
				fmt.Println(formatError(err))
				return nil
			}
			return err
		}

		if err := configs.SaveUserConfig(userConfig); err != nil {
			return Logger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Set " + ui.Code.Sprint(key) + " = " + ui.Highlight.Sprint(value))
		return nil
	},
}
