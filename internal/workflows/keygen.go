package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/fortress/internal/audit"
	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/fortress"
	"github.com/PolarWolf314/fortress/internal/utils"
)

// MaxKeysPerRun caps KeygenOptions.Count.
const MaxKeysPerRun = 100

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Count is the number of keys to generate. 0 means one.
	Count int

	// OutputFile, when set, receives the keys one per line with mode 0600.
	OutputFile string

	// Force overwrites an existing OutputFile.
	Force bool
}

// KeygenResult contains the generated keys.
type KeygenResult struct {
	Keys       []string
	OutputFile string
}

// GenerateKeys creates fresh security keys.
func GenerateKeys(ctx context.Context, opts KeygenOptions) (*KeygenResult, error) {
	count := opts.Count
	if count == 0 {
		count = 1
	}
	if count < 1 || count > MaxKeysPerRun {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", kerrors.ErrInvalidInput, MaxKeysPerRun)
	}

	if opts.OutputFile != "" && !opts.Force && utils.FileExists(opts.OutputFile) {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", kerrors.ErrOutputExists, opts.OutputFile)
	}

	keys := make([]string, count)
	for i := range keys {
		key, err := fortress.GenerateSecurityKey()
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	if opts.OutputFile != "" {
		content := strings.Join(keys, "\n") + "\n"
		if err := utils.WriteFileAtomic(opts.OutputFile, []byte(content), 0600); err != nil {
			return nil, fmt.Errorf("writing key file: %w", err)
		}
	}

	entry := audit.LogWithUser(audit.OpKeygen)
	entry.Count = count
	if opts.OutputFile != "" {
		entry.Outputs = []string{opts.OutputFile}
	}
	audit.Record(entry)

	return &KeygenResult{Keys: keys, OutputFile: opts.OutputFile}, nil
}
