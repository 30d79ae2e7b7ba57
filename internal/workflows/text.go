package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/fortress/internal/audit"
	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/fortress"
)

// TextOptions configures the text workflows. Text is the plaintext for
// EncryptText and the base64 container for DecryptText.
type TextOptions struct {
	Text        string
	Credentials Credentials
}

// TextResult holds the output of a text workflow.
type TextResult struct {
	Output string
}

// EncryptText encrypts opts.Text into a printable container.
// Returns ErrInvalidInput when the text or a credential is missing.
func EncryptText(ctx context.Context, opts TextOptions) (*TextResult, error) {
	if opts.Text == "" {
		return nil, fmt.Errorf("%w: text is required", kerrors.ErrInvalidInput)
	}
	if err := opts.Credentials.validate(); err != nil {
		return nil, err
	}

	encoded, err := fortress.EncryptText(opts.Text, opts.Credentials.Password, opts.Credentials.SecurityKey)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpEncryptText)
	entry.Bytes = int64(len(opts.Text))
	audit.Record(entry)

	return &TextResult{Output: encoded}, nil
}

// DecryptText decrypts a container produced by EncryptText.
func DecryptText(ctx context.Context, opts TextOptions) (*TextResult, error) {
	if opts.Text == "" {
		return nil, fmt.Errorf("%w: encrypted text is required", kerrors.ErrInvalidInput)
	}
	if err := opts.Credentials.validate(); err != nil {
		return nil, err
	}

	plaintext, err := fortress.DecryptText(opts.Text, opts.Credentials.Password, opts.Credentials.SecurityKey)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser(audit.OpDecryptText)
	entry.Bytes = int64(len(plaintext))
	audit.Record(entry)

	return &TextResult{Output: plaintext}, nil
}
