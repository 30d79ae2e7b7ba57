package errors

import "errors"

// Cryptographic errors form the closed set of failures returned by the
// encryption core. Callers must not expect any further detail from them.
var (
	// ErrCorruptContainer indicates a container could not be parsed: it is too
	// short, its metadata length points past the end, or its metadata is not
	// valid JSON.
	ErrCorruptContainer = errors.New("invalid or corrupt encrypted container")

	// ErrDecryptionFailed indicates authenticated decryption did not verify.
	// Wrong credentials and tampered ciphertext are deliberately not told apart.
	ErrDecryptionFailed = errors.New("decryption failed, check your password and security key")

	// ErrRandomUnavailable indicates the secure random source could not be read.
	ErrRandomUnavailable = errors.New("secure random source unavailable")
)

// Input errors indicate the caller did not supply everything an operation needs.
var (
	// ErrInvalidInput indicates a missing file, text, password or security key.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMetadataTooLarge indicates the encoded file metadata does not fit the
	// container's 16-bit length field.
	ErrMetadataTooLarge = errors.New("file metadata too large for container")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFileType indicates the file is not of the expected type.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrOutputExists indicates the output file already exists and overwriting
	// was not requested.
	ErrOutputExists = errors.New("output file already exists")

	// ErrUnsafeFileName indicates a stored file name cannot be used as an
	// output path.
	ErrUnsafeFileName = errors.New("unsafe file name in container metadata")
)

// Configuration errors indicate problems with the user configuration.
var (
	// ErrInvalidConfigKey indicates an unknown configuration key.
	ErrInvalidConfigKey = errors.New("unknown configuration key")

	// ErrInvalidConfigValue indicates a configuration value could not be parsed.
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Audit log errors.
var (
	// ErrNoAuditLog indicates no audit log has been written yet.
	ErrNoAuditLog = errors.New("no audit log found")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
