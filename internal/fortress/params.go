package fortress

const (
	pbkdf2Iterations = 100000
	saltSize         = 16
	ivSize           = 12
	keySize          = 32 // AES-256
	tagSize          = 16
	lengthFieldSize  = 2
	securityKeySize  = 32

	fileHeaderSize  = saltSize + ivSize + lengthFieldSize
	textHeaderSize  = saltSize + ivSize
	maxMetadataSize = 1<<(8*lengthFieldSize) - 1
)

// DefaultContentType is recorded when a file reports no content type.
const DefaultContentType = "application/octet-stream"

// FileExtension is the conventional extension for file containers. The codec
// does not require it.
const FileExtension = ".fortress"

// Params describes the fixed algorithm parameters of the container format.
type Params struct {
	// Iterations is the PBKDF2 iteration count.
	Iterations int

	// SaltSize is the salt length in bytes.
	SaltSize int

	// IVSize is the AES-GCM nonce length in bytes.
	IVSize int

	// KeySize is the derived key length in bytes.
	KeySize int

	// TagSize is the GCM authentication tag length in bytes.
	TagSize int

	// LengthFieldSize is the width of the metadata length prefix in bytes.
	LengthFieldSize int

	// SecurityKeySize is the number of random bytes in a security key.
	SecurityKeySize int
}

// DefaultParams returns the parameters every container is written with.
func DefaultParams() Params {
	return Params{
		Iterations:      pbkdf2Iterations,
		SaltSize:        saltSize,
		IVSize:          ivSize,
		KeySize:         keySize,
		TagSize:         tagSize,
		LengthFieldSize: lengthFieldSize,
		SecurityKeySize: securityKeySize,
	}
}

// FileHeaderSize is the minimum length of a file container.
func (p Params) FileHeaderSize() int {
	return p.SaltSize + p.IVSize + p.LengthFieldSize
}

// TextHeaderSize is the minimum decoded length of a text container.
func (p Params) TextHeaderSize() int {
	return p.SaltSize + p.IVSize
}

// MaxMetadataSize is the largest metadata JSON the length field can describe.
func (p Params) MaxMetadataSize() int {
	return 1<<(8*p.LengthFieldSize) - 1
}

// SecurityKeyLength is the length of a hex encoded security key.
func (p Params) SecurityKeyLength() int {
	return p.SecurityKeySize * 2
}
