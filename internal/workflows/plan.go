package workflows

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/utils"
)

// target pairs an input file with the file it will produce. Err is set when
// the pair was rejected during planning.
type target struct {
	Source string
	Output string
	Err    error
}

// claimOutputs rejects targets whose output already exists (unless force)
// or is claimed by an earlier target in the same batch.
func claimOutputs(targets []target, force bool) {
	claimed := make(map[string]string, len(targets))

	for i := range targets {
		t := &targets[i]
		if t.Err != nil {
			continue
		}

		key := filepath.Clean(t.Output)
		if prev, ok := claimed[key]; ok {
			t.Err = fmt.Errorf("%w: %s is also written by %s", kerrors.ErrOutputExists, t.Output, prev)
			continue
		}
		if !force && utils.FileExists(t.Output) {
			t.Err = fmt.Errorf("%w: %s (use --force to overwrite)", kerrors.ErrOutputExists, t.Output)
			continue
		}
		claimed[key] = t.Source
	}
}

func existingOutputs(targets []target) []string {
	var existing []string
	for _, t := range targets {
		if t.Err == nil && utils.FileExists(t.Output) {
			existing = append(existing, t.Output)
		}
	}
	return existing
}

func resolveBaseDir(baseDir string) (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return wd, nil
}

// resolveOutputDir applies the configured default output directory.
func resolveOutputDir(outputDir string, defaults string) string {
	if outputDir != "" {
		return outputDir
	}
	return defaults
}
