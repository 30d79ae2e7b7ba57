// Package errors provides typed error values for the fortress application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Crypto errors: container and decryption failures (ErrCorruptContainer, ErrDecryptionFailed)
//   - Input errors: missing or oversized input (ErrInvalidInput, ErrMetadataTooLarge)
//   - File errors: file system issues (ErrNoFilesFound, ErrOutputExists)
//   - Config errors: bad configuration keys or values (ErrInvalidConfigKey)
//
// The crypto errors are a closed set. Decryption never reports why a tag
// check failed, so a wrong password, a wrong security key and a tampered
// ciphertext all surface as ErrDecryptionFailed.
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(blob) < headerSize {
//	    return nil, errors.ErrCorruptContainer
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Decrypt(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptionFailed) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("decrypting %s: %w", path, errors.ErrDecryptionFailed)
package errors
