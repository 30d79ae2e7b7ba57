// Package configs manages per-user configuration for fortress.
//
// Paths are resolved once at startup into UserFortressSettings:
//
//   - config: $XDG_CONFIG_HOME/fortress (or the OS config dir)
//   - data: $XDG_DATA_HOME/fortress (or ~/.local/share/fortress)
//
// The config file is TOML:
//
//	[user]
//	installation_id = "6f1c..."
//	device_name = "work-laptop"
//
//	[defaults]
//	output_dir = ""
//	overwrite = false
//	workers = 4
//	audit = true
//
// EnsureUserConfig generates the installation id on first use. It only
// identifies this machine in the audit log and plays no part in encryption.
package configs
