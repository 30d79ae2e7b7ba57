package fortress

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
)

// FileMetadata describes the plaintext of a file container.
type FileMetadata struct {
	Name        string `json:"name"`
	ContentType string `json:"type"`
}

// FileContainer is a decoded file container.
type FileContainer struct {
	Salt       []byte
	IV         []byte
	Metadata   FileMetadata
	Ciphertext []byte

	// MetadataSize is the length of the stored metadata JSON.
	MetadataSize int
}

// TextContainer is a decoded text container.
type TextContainer struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// encodeMetadata renders metadata the way JSON.stringify does: same key
// order, no HTML escaping, no trailing newline.
func encodeMetadata(meta FileMetadata) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidInput, err)
	}

	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if len(data) > maxMetadataSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", kerrors.ErrMetadataTooLarge, len(data), maxMetadataSize)
	}

	return data, nil
}

func checkHeaderFields(salt, iv []byte) error {
	if len(salt) != saltSize {
		return fmt.Errorf("%w: salt must be %d bytes, got %d", kerrors.ErrInvalidInput, saltSize, len(salt))
	}
	if len(iv) != ivSize {
		return fmt.Errorf("%w: iv must be %d bytes, got %d", kerrors.ErrInvalidInput, ivSize, len(iv))
	}
	return nil
}

func assembleFileContainer(salt, iv, metadata, ciphertext []byte) []byte {
	out := make([]byte, 0, fileHeaderSize+len(metadata)+len(ciphertext))
	out = append(out, salt...)
	out = append(out, iv...)
	out = binary.LittleEndian.AppendUint16(out, uint16(len(metadata)))
	out = append(out, metadata...)
	out = append(out, ciphertext...)
	return out
}

// EncodeFileContainer lays out salt, IV, metadata and ciphertext as a file
// container. It returns ErrMetadataTooLarge rather than truncating the
// length field.
func EncodeFileContainer(salt, iv []byte, meta FileMetadata, ciphertext []byte) ([]byte, error) {
	if err := checkHeaderFields(salt, iv); err != nil {
		return nil, err
	}

	metadata, err := encodeMetadata(meta)
	if err != nil {
		return nil, err
	}

	return assembleFileContainer(salt, iv, metadata, ciphertext), nil
}

// DecodeFileContainer splits a file container into its parts. Every failure
// is ErrCorruptContainer. The returned slices do not alias blob.
func DecodeFileContainer(blob []byte) (*FileContainer, error) {
	if len(blob) < fileHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", kerrors.ErrCorruptContainer, len(blob), fileHeaderSize)
	}

	offset := 0
	salt := bytes.Clone(blob[offset : offset+saltSize])
	offset += saltSize

	iv := bytes.Clone(blob[offset : offset+ivSize])
	offset += ivSize

	metadataLength := int(binary.LittleEndian.Uint16(blob[offset : offset+lengthFieldSize]))
	offset += lengthFieldSize

	if len(blob) < offset+metadataLength {
		return nil, fmt.Errorf("%w: metadata length %d runs past the end of the data", kerrors.ErrCorruptContainer, metadataLength)
	}

	meta, err := decodeMetadata(blob[offset : offset+metadataLength])
	if err != nil {
		return nil, err
	}
	offset += metadataLength

	return &FileContainer{
		Salt:         salt,
		IV:           iv,
		Metadata:     meta,
		Ciphertext:   bytes.Clone(blob[offset:]),
		MetadataSize: metadataLength,
	}, nil
}

func decodeMetadata(data []byte) (FileMetadata, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return FileMetadata{}, fmt.Errorf("%w: metadata is not a JSON object", kerrors.ErrCorruptContainer)
	}

	var meta FileMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return FileMetadata{}, fmt.Errorf("%w: metadata fields are malformed", kerrors.ErrCorruptContainer)
	}

	return meta, nil
}

// EncodeTextContainer returns base64(salt | iv | ciphertext).
func EncodeTextContainer(salt, iv, ciphertext []byte) (string, error) {
	if err := checkHeaderFields(salt, iv); err != nil {
		return "", err
	}

	raw := make([]byte, 0, textHeaderSize+len(ciphertext))
	raw = append(raw, salt...)
	raw = append(raw, iv...)
	raw = append(raw, ciphertext...)

	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeTextContainer reverses EncodeTextContainer. Whitespace, such as line
// breaks added when the text was copied, is ignored.
func DecodeTextContainer(encoded string) (*TextContainer, error) {
	compact := strings.Join(strings.Fields(encoded), "")

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("%w: text is not valid base64", kerrors.ErrCorruptContainer)
	}
	if len(raw) < textHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", kerrors.ErrCorruptContainer, len(raw), textHeaderSize)
	}

	return &TextContainer{
		Salt:       raw[:saltSize],
		IV:         raw[saltSize:textHeaderSize],
		Ciphertext: raw[textHeaderSize:],
	}, nil
}
