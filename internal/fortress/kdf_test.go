package fortress

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func testSalt(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, saltSize)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := testSalt(0x42)

	first := DeriveKey("password123", "securitykey", salt)
	second := DeriveKey("password123", "securitykey", salt)

	if !first.Equal(second) {
		t.Error("Expected identical inputs to derive identical keys")
	}
}

func TestDeriveKey_InputsChangeKey(t *testing.T) {
	base := DeriveKey("password123", "securitykey", testSalt(0x01))

	tests := []struct {
		name        string
		password    string
		securityKey string
		salt        []byte
	}{
		{"DifferentPassword", "password124", "securitykey", testSalt(0x01)},
		{"DifferentSecurityKey", "password123", "securitykeY", testSalt(0x01)},
		{"DifferentSalt", "password123", "securitykey", testSalt(0x02)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := DeriveKey(tc.password, tc.securityKey, tc.salt)
			if base.Equal(key) {
				t.Errorf("Expected %s to produce a different key", tc.name)
			}
		})
	}
}

func TestDeriveKey_ConcatenatesWithoutSeparator(t *testing.T) {
	salt := testSalt(0x07)

	// "ab"+"c" and "a"+"bc" are the same key material.
	if !DeriveKey("ab", "c", salt).Equal(DeriveKey("a", "bc", salt)) {
		t.Error("Expected password and security key to be joined without a separator")
	}
}

func TestDeriveKey_MatchesPBKDF2SHA256(t *testing.T) {
	salt := testSalt(0x33)
	key := DeriveKey("pässword", "0123abcd", salt)

	want := pbkdf2.Key([]byte("pässword0123abcd"), salt, 100000, 32, sha256.New)
	if !bytes.Equal(key.b, want) {
		t.Error("Expected key to equal PBKDF2-HMAC-SHA256 with 100000 iterations")
	}
	if len(key.b) != 32 {
		t.Errorf("Expected a 32 byte key, got %d bytes", len(key.b))
	}
}

func TestDeriveKey_PanicsOnBadSalt(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected DeriveKey to panic on a short salt")
		}
	}()
	DeriveKey("password", "key", make([]byte, 8))
}

func TestDerivedKey_Destroy(t *testing.T) {
	salt := testSalt(0x09)
	key := DeriveKey("password", "key", salt)
	raw := key.b

	key.Destroy()

	if key.Equal(DeriveKey("password", "key", salt)) {
		t.Error("Expected a destroyed key to compare unequal")
	}
	if !bytes.Equal(raw, make([]byte, len(raw))) {
		t.Error("Expected key bytes to be zeroed")
	}
	if _, err := Seal(key, make([]byte, ivSize), []byte("data")); err == nil {
		t.Error("Expected Seal with a destroyed key to fail")
	}

	// Destroying twice or destroying nil is harmless.
	key.Destroy()
	var nilKey *DerivedKey
	nilKey.Destroy()
}

func TestDerivedKey_Redacted(t *testing.T) {
	key := DeriveKey("password", "key", testSalt(0x0a))

	for _, verb := range []string{"%v", "%s", "%#v"} {
		out := fmt.Sprintf(verb, key)
		if out != "DerivedKey(redacted)" {
			t.Errorf("fmt.Sprintf(%q, key) = %q, expected redacted form", verb, out)
		}
	}
}
