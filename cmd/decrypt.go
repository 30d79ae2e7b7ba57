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
	decryptOutputDir string
	decryptForce     bool
	decryptDryRun    bool
	decryptWorkers   int
	decryptCreds     credentialFlags
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptOutputDir, "output", "o", "", "directory for the decrypted files (default: next to each container)")
	decryptCmd.Flags().BoolVarP(&decryptForce, "force", "f", false, "overwrite existing files")
	decryptCmd.Flags().BoolVar(&decryptDryRun, "dry-run", false, "preview which files would be written without deriving keys")
	decryptCmd.Flags().IntVarP(&decryptWorkers, "workers", "j", 0, "number of files to decrypt in parallel (default from config)")
	decryptCreds.register(decryptCmd, false)
}

func resetDecryptCommandState() {
	decryptOutputDir = ""
	decryptForce = false
	decryptDryRun = false
	decryptWorkers = 0
	decryptCreds.reset()
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <paths...>",
	Short: "Decrypts .fortress containers back into files",
	Long: `Decrypts .fortress containers with the password and security key used
to encrypt them.

Each file is restored under the name stored in its container, next to the
container (or in --output). Directories and glob patterns only match
.fortress files.

A wrong password, a wrong security key and a modified container all
report the same error.

Examples:
  fortress decrypt report.pdf.fortress --key-file ~/fortress.key
  fortress decrypt vault/ -o restored/
  fortress decrypt 'docs/**/*.fortress' --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		opts := workflows.DecryptOptions{
			Patterns:  args,
			OutputDir: decryptOutputDir,
			Force:     decryptForce,
			DryRun:    decryptDryRun,
			Workers:   decryptWorkers,
		}

		if !decryptDryRun {
			creds, err := resolveCredentials(decryptCreds, false, false)
			if err != nil {
				return handleCredentialError(err)
			}
			opts.Credentials = creds.Credentials
		}

		spinner, cleanup := startSpinner("Decrypting files...", verbose)
		defer cleanup()

		result, err := workflows.Decrypt(commandContext(cmd), opts)
		if result == nil {
			if isExpectedError(err) {
				spinner.FinalMSG = formatError(err)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to decrypt: %v", err)
		}

		if result.DryRun {
			spinner.FinalMSG = formatDryRun(result.Files, result.ExistingFiles, "decrypted")
			return nil
		}

		spinner.FinalMSG = formatDecryptResult(result, err)
		if err != nil && !isExpectedError(err) {
			return err
		}
		return nil
	},
}

func formatDecryptResult(result *workflows.DecryptResult, err error) string {
	total := len(result.Files)
	done := len(result.DecryptedFiles)

	var msg string
	switch {
	case errors.Is(err, context.Canceled):
		msg = ui.Warning.Sprint("⚠") + fmt.Sprintf(" Cancelled after decrypting %d of %d file(s)\n", done, total)
	case err != nil:
		msg = ui.Error.Sprint("✗") + fmt.Sprintf(" %d of %d file(s) could not be decrypted\n", total-done, total)
	default:
		msg = ui.Success.Sprint("✓") + fmt.Sprintf(" Decrypted %d file(s) %s\n", done, ui.Muted.Sprint(ui.Bytes(result.BytesDecrypted)))
	}
	msg += formatFileResults(result.Files, "decrypted")

	if err != nil && done < total {
		msg += ui.Info.Sprint("→") + " Failed files need the same password and security key that encrypted them"
	}
	return msg
}
