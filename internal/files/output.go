package files

import (
	"fmt"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/fortress"
)

// EncryptedPath is where the container for src goes: src plus the
// container extension, inside outputDir when one is set.
func EncryptedPath(src, outputDir string) string {
	name := filepath.Base(src) + fortress.FileExtension
	if outputDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outputDir, name)
}

// DecryptedPath is where the plaintext of container goes, named after the
// stored name. The stored name comes from unauthenticated metadata, so only
// its last path element is used.
func DecryptedPath(container, storedName, outputDir string) (string, error) {
	name, err := SafeBaseName(storedName)
	if err != nil {
		return "", err
	}

	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(container)
	}
	return filepath.Join(dir, name), nil
}

// SafeBaseName reduces name to a single path element. Names that reduce to
// nothing, "." or ".." are rejected.
func SafeBaseName(name string) (string, error) {
	cleaned := strings.ReplaceAll(name, "\\", "/")
	cleaned = strings.TrimRight(cleaned, "/")
	if i := strings.LastIndex(cleaned, "/"); i >= 0 {
		cleaned = cleaned[i+1:]
	}
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || cleaned == "." || cleaned == ".." || strings.ContainsRune(cleaned, 0) {
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnsafeFileName, name)
	}
	return cleaned, nil
}
