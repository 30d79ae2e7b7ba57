package workflows

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
)

// Credentials are the two secrets every encrypt and decrypt call needs.
type Credentials struct {
	Password    string
	SecurityKey string
}

func (c Credentials) validate() error {
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", kerrors.ErrInvalidInput)
	}
	if c.SecurityKey == "" {
		return fmt.Errorf("%w: security key is required", kerrors.ErrInvalidInput)
	}
	return nil
}

// LoadSecurityKeyFile returns the first non-blank line of a key file, such
// as one written by GenerateKeys.
func LoadSecurityKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return "", fmt.Errorf("reading security key file: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading security key file: %w", err)
	}

	return "", fmt.Errorf("%w: %s contains no security key", kerrors.ErrInvalidInput, path)
}
