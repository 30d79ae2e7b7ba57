package fortress

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
)

func newGCM(key *DerivedKey) (cipher.AEAD, error) {
	if key == nil || key.b == nil {
		return nil, fmt.Errorf("key has been destroyed")
	}

	block, err := aes.NewCipher(key.b)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM cipher: %w", err)
	}

	return gcm, nil
}

// Seal encrypts plaintext with AES-256-GCM. The 16-byte tag is appended to
// the returned ciphertext. No associated data is used.
func Seal(key *DerivedKey, iv, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", kerrors.ErrInvalidInput, gcm.NonceSize(), len(iv))
	}

	return gcm.Seal(nil, iv, plaintext, nil), nil
}

// Open verifies and decrypts ciphertext produced by Seal. Any failure is
// reported as ErrDecryptionFailed and no plaintext is returned.
func Open(key *DerivedKey, iv, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, kerrors.ErrDecryptionFailed
	}
	if len(iv) != gcm.NonceSize() {
		return nil, kerrors.ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrDecryptionFailed
	}

	return plaintext, nil
}
