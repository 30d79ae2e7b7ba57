package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/fortress"
	"github.com/PolarWolf314/fortress/internal/ui"
	"github.com/PolarWolf314/fortress/internal/utils"
	"github.com/PolarWolf314/fortress/internal/workflows"
	"github.com/briandowns/spinner"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

const (
	passwordEnv    = "FORTRESS_PASSWORD"
	securityKeyEnv = "FORTRESS_SECURITY_KEY"
)

// Prompts are variables so tests can run without a terminal.
var (
	readPassphrase        = utils.ReadPassphrase
	readPassphraseFromTTY = utils.ReadPassphraseFromTTY
	isTerminal            = utils.IsTerminal
	isTTYAvailable        = utils.IsTTYAvailable
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// credentialFlags are the security key flags shared by the encrypt, decrypt
// and text commands.
type credentialFlags struct {
	key         string
	keyFile     string
	generateKey bool
}

func (f *credentialFlags) register(cmd *cobra.Command, allowGenerate bool) {
	cmd.Flags().StringVar(&f.key, "key", "", "security key (prefer --key-file or "+securityKeyEnv+")")
	cmd.Flags().StringVar(&f.keyFile, "key-file", "", "read the security key from a file")
	if allowGenerate {
		cmd.Flags().BoolVar(&f.generateKey, "generate-key", false, "generate a new security key and print it once")
	}
}

func (f *credentialFlags) reset() {
	f.key = ""
	f.keyFile = ""
	f.generateKey = false
}

// resolvedCredentials carries the secrets for one command run. generated is
// set when the security key was created by --generate-key.
type resolvedCredentials struct {
	workflows.Credentials
	generated bool
}

// resolveCredentials gathers the password and the security key.
//
// The key comes from --generate-key, --key, --key-file, then
// FORTRESS_SECURITY_KEY, then a hidden prompt. The password comes from
// FORTRESS_PASSWORD or a hidden prompt, asked twice when confirm is set.
// stdinBusy makes prompts read the controlling terminal instead of stdin.
func resolveCredentials(flags credentialFlags, confirm, stdinBusy bool) (*resolvedCredentials, error) {
	creds := &resolvedCredentials{}

	key, generated, err := resolveSecurityKey(flags, stdinBusy)
	if err != nil {
		return nil, err
	}
	creds.SecurityKey = key
	creds.generated = generated

	if !fortress.IsWellFormedSecurityKey(key) {
		Logger.WarnfAlways("The security key is not a 64 character hex key. Consider using one from %s",
			ui.Code.Sprint("fortress keygen"))
	}

	password, err := resolvePassword(confirm, stdinBusy)
	if err != nil {
		return nil, err
	}
	creds.Password = password

	return creds, nil
}

func resolveSecurityKey(flags credentialFlags, stdinBusy bool) (string, bool, error) {
	set := 0
	for _, given := range []bool{flags.generateKey, flags.key != "", flags.keyFile != ""} {
		if given {
			set++
		}
	}
	if set > 1 {
		return "", false, fmt.Errorf("%w: use only one of --key, --key-file and --generate-key", kerrors.ErrInvalidInput)
	}

	switch {
	case flags.generateKey:
		Logger.Debugf("Generating a new security key")
		key, err := fortress.GenerateSecurityKey()
		return key, true, err
	case flags.key != "":
		Logger.Debugf("Using security key from --key")
		return strings.TrimSpace(flags.key), false, nil
	case flags.keyFile != "":
		Logger.Debugf("Reading security key from %s", flags.keyFile)
		key, err := workflows.LoadSecurityKeyFile(flags.keyFile)
		if err != nil {
			return "", false, err
		}
		if info, err := os.Stat(flags.keyFile); err == nil && info.Mode().Perm()&0077 != 0 {
			Logger.WarnfAlways("Security key file has overly permissive permissions (%o), consider running 'chmod 600 %s'",
				info.Mode().Perm(), flags.keyFile)
		}
		return key, false, nil
	}

	if key := strings.TrimSpace(os.Getenv(securityKeyEnv)); key != "" {
		Logger.Debugf("Using security key from %s", securityKeyEnv)
		return key, false, nil
	}

	key, err := prompt("Security key: ", stdinBusy)
	if err != nil {
		return "", false, fmt.Errorf("%w: no security key given (use --key-file or %s)", kerrors.ErrInvalidInput, securityKeyEnv)
	}
	return strings.TrimSpace(key), false, nil
}

func resolvePassword(confirm, stdinBusy bool) (string, error) {
	if password := os.Getenv(passwordEnv); password != "" {
		Logger.Debugf("Using password from %s", passwordEnv)
		return password, nil
	}

	password, err := prompt("Password: ", stdinBusy)
	if err != nil {
		return "", fmt.Errorf("%w: no password given (set %s or run in a terminal)", kerrors.ErrInvalidInput, passwordEnv)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", kerrors.ErrInvalidInput)
	}

	if confirm {
		again, err := prompt("Confirm password: ", stdinBusy)
		if err != nil {
			return "", fmt.Errorf("%w: %v", kerrors.ErrInvalidInput, err)
		}
		if again != password {
			return "", fmt.Errorf("%w: passwords do not match", kerrors.ErrInvalidInput)
		}
	}

	return password, nil
}

func prompt(label string, stdinBusy bool) (string, error) {
	var (
		value []byte
		err   error
	)
	switch {
	case !stdinBusy && isTerminal():
		value, err = readPassphrase(label)
	case isTTYAvailable():
		value, err = readPassphraseFromTTY(label)
	default:
		return "", fmt.Errorf("no terminal available for %s", strings.TrimSuffix(label, ": "))
	}
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// isExpectedError reports whether err is a user-facing condition that gets
// a formatted message instead of a returned error.
func isExpectedError(err error) bool {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return true
	}
	for _, sentinel := range []error{
		kerrors.ErrInvalidInput,
		kerrors.ErrCorruptContainer,
		kerrors.ErrDecryptionFailed,
		kerrors.ErrMetadataTooLarge,
		kerrors.ErrNoFilesFound,
		kerrors.ErrFileNotFound,
		kerrors.ErrInvalidFileType,
		kerrors.ErrOutputExists,
		kerrors.ErrUnsafeFileName,
		kerrors.ErrInvalidConfigKey,
		kerrors.ErrInvalidConfigValue,
		kerrors.ErrNoAuditLog,
		kerrors.ErrInvalidDateFormat,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// formatError renders an expected error as a FinalMSG with a hint.
func formatError(err error) string {
	msg := ui.Error.Sprint("✗") + " " + err.Error()

	switch {
	case errors.Is(err, kerrors.ErrDecryptionFailed):
		msg += "\n" + ui.Info.Sprint("→") + " Both the password and the security key must match the ones used to encrypt"
	case errors.Is(err, kerrors.ErrCorruptContainer):
		msg += "\n" + ui.Info.Sprint("→") + " Check that the input was produced by " + ui.Code.Sprint("fortress")
	case errors.Is(err, kerrors.ErrOutputExists):
		msg += "\n" + ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite"
	case errors.Is(err, kerrors.ErrNoFilesFound), errors.Is(err, kerrors.ErrFileNotFound):
		msg += "\n" + ui.Info.Sprint("→") + " Check the paths and glob patterns you passed"
	case errors.Is(err, kerrors.ErrNoAuditLog):
		msg += "\n" + ui.Info.Sprint("→") + " Entries are added when you encrypt or decrypt"
	}

	return msg
}

// formatFileResults lists successes and failures of a batch, one per line.
func formatFileResults(results []workflows.FileResult, verb string) string {
	var b strings.Builder
	for _, r := range results {
		switch {
		case r.Source == "":
			// Never started: the batch was cancelled.
			continue
		case r.Err != nil:
			fmt.Fprintf(&b, "  %s %s: %s\n", ui.Error.Sprint("✗"), ui.Path.Sprint(r.Source), fileErrorReason(r.Err))
			continue
		}
		fmt.Fprintf(&b, "  %s %s → %s %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(r.Source),
			ui.Path.Sprint(r.Output), ui.Muted.Sprint(ui.Bytes(r.Bytes)+" "+verb))
	}
	return b.String()
}

func fileErrorReason(err error) string {
	for _, sentinel := range []error{
		kerrors.ErrDecryptionFailed,
		kerrors.ErrCorruptContainer,
		kerrors.ErrOutputExists,
		kerrors.ErrUnsafeFileName,
		kerrors.ErrMetadataTooLarge,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// formatDryRun lists planned outputs and flags the ones that already exist.
func formatDryRun(results []workflows.FileResult, existing []string, verb string) string {
	exists := make(map[string]bool, len(existing))
	for _, path := range existing {
		exists[path] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Dry run: %d file(s) would be %s\n\n", ui.Warning.Sprint("[dry-run]"), len(results), verb)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&b, "  %s %s: %s\n", ui.Error.Sprint("✗"), ui.Path.Sprint(r.Source), fileErrorReason(r.Err))
			continue
		}
		line := fmt.Sprintf("  %s → %s", ui.Path.Sprint(r.Source), ui.Path.Sprint(r.Output))
		if exists[r.Output] {
			line += " " + ui.Warning.Sprint("(exists, use --force)")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + ui.Info.Sprint("No changes made.") + " Run without " + ui.Flag.Sprint("--dry-run") + " to proceed.")
	return b.String()
}
