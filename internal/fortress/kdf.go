package fortress

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// DerivedKey is a 256-bit AES key. Its bytes never leave this package; the
// only things a caller can do with it are encrypt, decrypt, compare and
// destroy.
type DerivedKey struct {
	b []byte
}

// DeriveKey derives the encryption key for one container from the password,
// the security key and the container's salt.
//
// The key material is the UTF-8 password immediately followed by the
// security key. The result is deterministic for the same three inputs.
// It panics if salt is not exactly 16 bytes.
func DeriveKey(password, securityKey string, salt []byte) *DerivedKey {
	if len(salt) != saltSize {
		panic(fmt.Sprintf("fortress: salt must be %d bytes, got %d", saltSize, len(salt)))
	}

	material := []byte(password + securityKey)
	defer wipe(material)

	return &DerivedKey{b: pbkdf2.Key(material, salt, pbkdf2Iterations, keySize, sha256.New)}
}

// Equal reports whether both keys hold the same bytes, in constant time.
func (k *DerivedKey) Equal(other *DerivedKey) bool {
	if k == nil || other == nil || k.b == nil || other.b == nil {
		return false
	}
	return subtle.ConstantTimeCompare(k.b, other.b) == 1
}

// Destroy zeroes the key. A destroyed key can no longer encrypt or decrypt.
func (k *DerivedKey) Destroy() {
	if k == nil {
		return
	}
	wipe(k.b)
	k.b = nil
}

// String keeps key bytes out of logs and error messages.
func (k *DerivedKey) String() string {
	return "DerivedKey(redacted)"
}

// GoString implements fmt.GoStringer for %#v.
func (k *DerivedKey) GoString() string {
	return k.String()
}

func wipe(b []byte) {
	clear(b)
}
