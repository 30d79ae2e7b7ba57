package fortress

// deriveKey is replaced in tests to observe when derivation happens.
var deriveKey = DeriveKey

// File is a plaintext file ready to be encrypted.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// EncryptFile encrypts f into a file container. ContentType defaults to
// application/octet-stream.
func EncryptFile(f File, password, securityKey string) ([]byte, error) {
	meta := FileMetadata{Name: f.Name, ContentType: f.ContentType}
	if meta.ContentType == "" {
		meta.ContentType = DefaultContentType
	}

	// Size the metadata before paying for key derivation.
	metadata, err := encodeMetadata(meta)
	if err != nil {
		return nil, err
	}

	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	iv, err := GenerateIV()
	if err != nil {
		return nil, err
	}

	key := deriveKey(password, securityKey, salt)
	defer key.Destroy()

	ciphertext, err := Seal(key, iv, f.Data)
	if err != nil {
		return nil, err
	}

	return assembleFileContainer(salt, iv, metadata, ciphertext), nil
}

// DecryptFile decrypts a file container and returns the plaintext with the
// stored metadata. The metadata is not authenticated.
func DecryptFile(blob []byte, password, securityKey string) ([]byte, FileMetadata, error) {
	container, err := DecodeFileContainer(blob)
	if err != nil {
		return nil, FileMetadata{}, err
	}

	key := deriveKey(password, securityKey, container.Salt)
	defer key.Destroy()

	plaintext, err := Open(key, container.IV, container.Ciphertext)
	if err != nil {
		return nil, FileMetadata{}, err
	}

	return plaintext, container.Metadata, nil
}

// EncryptText encrypts text into a printable text container.
func EncryptText(text, password, securityKey string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	iv, err := GenerateIV()
	if err != nil {
		return "", err
	}

	key := deriveKey(password, securityKey, salt)
	defer key.Destroy()

	ciphertext, err := Seal(key, iv, []byte(text))
	if err != nil {
		return "", err
	}

	return EncodeTextContainer(salt, iv, ciphertext)
}

// DecryptText decrypts a text container produced by EncryptText.
func DecryptText(encoded, password, securityKey string) (string, error) {
	container, err := DecodeTextContainer(encoded)
	if err != nil {
		return "", err
	}

	key := deriveKey(password, securityKey, container.Salt)
	defer key.Destroy()

	plaintext, err := Open(key, container.IV, container.Ciphertext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
