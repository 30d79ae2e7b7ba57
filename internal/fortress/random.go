package fortress

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
)

// randReader is swapped out in tests to simulate an unavailable source.
var randReader io.Reader = rand.Reader

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrRandomUnavailable, err)
	}
	return b, nil
}

// GenerateSalt returns 16 bytes from the secure random source.
func GenerateSalt() ([]byte, error) {
	return randomBytes(saltSize)
}

// GenerateIV returns 12 bytes from the secure random source.
func GenerateIV() ([]byte, error) {
	return randomBytes(ivSize)
}

// GenerateSecurityKey returns 32 random bytes as 64 lowercase hex characters.
func GenerateSecurityKey() (string, error) {
	b, err := randomBytes(securityKeySize)
	if err != nil {
		return "", err
	}
	defer wipe(b)

	return hex.EncodeToString(b), nil
}

// IsWellFormedSecurityKey reports whether s looks like a generated security
// key. Keys are used verbatim either way; this only drives warnings.
func IsWellFormedSecurityKey(s string) bool {
	if len(s) != securityKeySize*2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
