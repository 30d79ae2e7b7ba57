package cmd

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/utils"
	"github.com/PolarWolf314/fortress/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	textEncryptCreds credentialFlags
	textDecryptCreds credentialFlags
)

func init() {
	textEncryptCreds.register(textEncryptCmd, true)
	textDecryptCreds.register(textDecryptCmd, false)

	TextCmd.AddCommand(textEncryptCmd)
	TextCmd.AddCommand(textDecryptCmd)
}

func resetTextCommandState() {
	textEncryptCreds.reset()
	textDecryptCreds.reset()
}

// TextCmd groups the commands that work on short texts instead of files.
var TextCmd = &cobra.Command{
	Use:   "text",
	Short: "Encrypts and decrypts short texts",
	Long: `Encrypts a short text into a single base64 line that is safe to paste
into chats, emails or notes, and turns such a line back into the text.

The text is read from the argument, or from stdin when no argument or "-"
is given. The result is printed to stdout.`,
}

var textEncryptCmd = &cobra.Command{
	Use:   "encrypt [text]",
	Short: "Encrypts a text into a base64 line",
	Example: `  fortress text encrypt "meet at noon" --key-file ~/fortress.key
  echo "meet at noon" | fortress text encrypt --key-file ~/fortress.key`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting text encrypt command")
		return runText(commandContext(cmd), args, textEncryptCreds, true)
	},
}

var textDecryptCmd = &cobra.Command{
	Use:   "decrypt [blob]",
	Short: "Decrypts a base64 line back into the text",
	Example: `  fortress text decrypt "q83vASNFZ4mrze8..." --key-file ~/fortress.key
  pbpaste | fortress text decrypt --key-file ~/fortress.key`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting text decrypt command")
		return runText(commandContext(cmd), args, textDecryptCreds, false)
	},
}

func runText(ctx context.Context, args []string, flags credentialFlags, encrypt bool) error {
	input, fromStdin, err := readTextInput(args)
	if err != nil {
		return handleCredentialError(err)
	}
	if !encrypt {
		input = strings.TrimSpace(input)
	}

	creds, err := resolveCredentials(flags, encrypt, fromStdin)
	if err != nil {
		return handleCredentialError(err)
	}

	message := "Decrypting text..."
	run := workflows.DecryptText
	if encrypt {
		message = "Encrypting text..."
		run = workflows.EncryptText
	}

	spinner, cleanup := startSpinner(message, verbose)
	result, err := run(ctx, workflows.TextOptions{Text: input, Credentials: creds.Credentials})
	if err != nil {
		if isExpectedError(err) {
			spinner.FinalMSG = formatError(err)
			cleanup()
			return nil
		}
		cleanup()
		return Logger.ErrorfAndReturn("failed to process text: %v", err)
	}
	cleanup()

	if creds.generated {
		Logger.WarnfAlways("Your new security key is %s. Store it somewhere safe, it cannot be recovered", creds.SecurityKey)
	}
	fmt.Println(result.Output)
	return nil
}

// readTextInput returns the text argument, or stdin when there is none or
// it is "-". fromStdin reports that prompts must not use stdin.
func readTextInput(args []string) (string, bool, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], false, nil
	}

	data, err := utils.ReadStdin()
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", kerrors.ErrInvalidInput, err)
	}
	return utils.TrimLineEnding(string(data)), true, nil
}
