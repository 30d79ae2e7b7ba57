// Package fortress implements the password-based encryption core and the
// .fortress container format.
//
// A key is derived from a password and a separately generated security key
// with PBKDF2-HMAC-SHA256, then used once for AES-256-GCM. Every encryption
// draws a fresh salt and IV, so the same inputs never produce the same
// container twice.
//
// # Container Formats
//
// Files are stored as:
//
//	salt(16) | iv(12) | metadataLength(2, little-endian) | metadata JSON | ciphertext+tag
//
// Text snippets are stored as base64(salt(16) | iv(12) | ciphertext+tag).
//
// The metadata JSON ({"name": ..., "type": ...}) is stored in clear and is
// not authenticated by GCM. Callers must treat it as untrusted input.
//
// # Errors
//
// Decoding fails with ErrCorruptContainer before any key derivation takes
// place. Authentication failures are always ErrDecryptionFailed, whatever
// the cause. Both live in internal/errors.
//
// # Concurrency
//
// The package holds no mutable state. Functions may be called from many
// goroutines at once.
package fortress
