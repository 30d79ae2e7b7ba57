package workflows

import (
	"context"
	"fmt"
	"os"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/fortress"
)

// InspectResult describes a container without decrypting it.
type InspectResult struct {
	Path     string
	Size     int64
	Metadata fortress.FileMetadata

	HeaderSize     int
	MetadataSize   int
	CiphertextSize int // Excluding the authentication tag.
	TagSize        int
}

// Inspect decodes the container at path. No credentials are needed, and
// nothing it reports is authenticated.
func Inspect(ctx context.Context, path string) (*InspectResult, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}

	container, err := fortress.DecodeFileContainer(blob)
	if err != nil {
		return nil, err
	}

	params := fortress.DefaultParams()
	ciphertextSize := len(container.Ciphertext) - params.TagSize
	if ciphertextSize < 0 {
		ciphertextSize = 0
	}

	return &InspectResult{
		Path:           path,
		Size:           int64(len(blob)),
		Metadata:       container.Metadata,
		HeaderSize:     params.FileHeaderSize(),
		MetadataSize:   container.MetadataSize,
		CiphertextSize: ciphertextSize,
		TagSize:        params.TagSize,
	}, nil
}
