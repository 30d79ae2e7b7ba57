package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/fortress/internal/ui"
	"github.com/PolarWolf314/fortress/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	encryptOutputDir string
	encryptForce     bool
	encryptDryRun    bool
	encryptWorkers   int
	encryptCreds     credentialFlags
)

func init() {
	encryptCmd.Flags().StringVarP(&encryptOutputDir, "output", "o", "", "directory for the .fortress files (default: next to each file)")
	encryptCmd.Flags().BoolVarP(&encryptForce, "force", "f", false, "overwrite existing .fortress files")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "preview which files would be encrypted without making changes")
	encryptCmd.Flags().IntVarP(&encryptWorkers, "workers", "j", 0, "number of files to encrypt in parallel (default from config)")
	encryptCreds.register(encryptCmd, true)
}

func resetEncryptCommandState() {
	encryptOutputDir = ""
	encryptForce = false
	encryptDryRun = false
	encryptWorkers = 0
	encryptCreds.reset()
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt <paths...>",
	Short: "Encrypts files into .fortress containers",
	Long: `Encrypts files with a password and a security key.

Each file becomes <name>.fortress next to the original (or in --output).
Directories are searched recursively, and glob patterns such as
'docs/**/*.pdf' are expanded. Existing .fortress files are skipped.

The original files are left in place. Remove them yourself once you have
checked the encrypted copies.

Examples:
  fortress encrypt report.pdf --key-file ~/fortress.key
  fortress encrypt docs 'photos/*.jpg' -o vault/
  fortress encrypt notes.txt --generate-key
  fortress encrypt docs --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		opts := workflows.EncryptOptions{
			Patterns:  args,
			OutputDir: encryptOutputDir,
			Force:     encryptForce,
			DryRun:    encryptDryRun,
			Workers:   encryptWorkers,
		}

		var generatedKey string
		if !encryptDryRun {
			creds, err := resolveCredentials(encryptCreds, true, false)
			if err != nil {
				return handleCredentialError(err)
			}
			opts.Credentials = creds.Credentials
			if creds.generated {
				generatedKey = creds.SecurityKey
			}
		}

		spinner, cleanup := startSpinner("Encrypting files...", verbose)
		defer cleanup()

		result, err := workflows.Encrypt(commandContext(cmd), opts)
		if result == nil {
			if isExpectedError(err) {
				spinner.FinalMSG = formatError(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to encrypt: %v", err)
		}

		if result.DryRun {
			spinner.FinalMSG = formatDryRun(result.Files, result.ExistingFiles, "encrypted")
			return nil
		}

		spinner.FinalMSG = formatEncryptResult(result, generatedKey, err)
		if err != nil && !isExpectedError(err) {
			return err
		}
		return nil
	},
}

func formatEncryptResult(result *workflows.EncryptResult, generatedKey string, err error) string {
	total := len(result.Files)
	done := len(result.EncryptedFiles)

	var msg string
	switch {
	case errors.Is(err, context.Canceled):
		msg = ui.Warning.Sprint("⚠") + fmt.Sprintf(" Cancelled after encrypting %d of %d file(s)\n", done, total)
	case err != nil:
		msg = ui.Error.Sprint("✗") + fmt.Sprintf(" %d of %d file(s) could not be encrypted\n", total-done, total)
	default:
		msg = ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted %d file(s) %s\n", done, ui.Muted.Sprint(ui.Bytes(result.BytesEncrypted)))
	}
	msg += formatFileResults(result.Files, "encrypted")

	if generatedKey != "" && done > 0 {
		msg += "\n" + ui.Warning.Sprint("⚠") + " Your new security key is " + ui.Secret.Sprint(generatedKey) + "\n" +
			"  Store it somewhere safe. It is not saved anywhere and cannot be recovered.\n"
	}
	if done > 0 {
		msg += ui.Info.Sprint("→") + " The original files were kept. Remove them once you have checked the encrypted copies"
	}
	return msg
}

// handleCredentialError prints missing or invalid credentials as a
// message. Other errors are returned.
func handleCredentialError(err error) error {
	if isExpectedError(err) {
		fmt.Println(formatError(err))
		return nil
	}
	return Logger.ErrorfAndReturn("failed to read credentials: %v", err)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
