// Package workflows implements the business logic behind each fortress
// command.
//
// The cmd package stays thin: it parses flags, gathers credentials, calls a
// workflow and formats the result. Workflows do the rest:
//
//   - resolving input files and output paths
//   - applying defaults from the user config
//   - calling the encryption core
//   - writing outputs atomically
//   - recording audit entries
//
// # Available Workflows
//
//   - Encrypt, Decrypt: batch file encryption to and from .fortress
//     containers, run in parallel with a bounded number of workers
//   - Inspect: container header details without credentials
//   - EncryptText, DecryptText: single string round trips
//   - GenerateKeys: new security keys, optionally saved to a key file
//   - Log: filtered view of the audit trail
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors, wrapped with
// context. Batch workflows return a result even when some files failed;
// the error then aggregates every per-file failure:
//
//	result, err := workflows.Encrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // at least one file failed to authenticate
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancelling it stops batch workflows from starting further files.
package workflows
