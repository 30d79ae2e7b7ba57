package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/fortress/internal/audit"
	"github.com/PolarWolf314/fortress/internal/configs"
	"github.com/PolarWolf314/fortress/internal/files"
	"github.com/PolarWolf314/fortress/internal/fortress"
	"github.com/PolarWolf314/fortress/internal/utils"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Patterns are .fortress files, directories or globs to decrypt.
	Patterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// OutputDir receives the plaintext files. Defaults to the configured
	// output directory, then to each container's directory.
	OutputDir string

	// Force overwrites existing plaintext files.
	Force bool

	// DryRun reads the container headers and reports the files that would
	// be written, without deriving keys.
	DryRun bool

	// Workers bounds parallel decryptions. 0 uses the configured default.
	Workers int

	Credentials Credentials
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// SourceFiles and DecryptedFiles list the successful pairs, in order.
	SourceFiles    []string
	DecryptedFiles []string

	// Files holds one entry per resolved container, including failures.
	Files []FileResult

	// BytesDecrypted is the plaintext volume written.
	BytesDecrypted int64

	DryRun bool

	// ExistingFiles lists outputs that already exist (dry run only).
	ExistingFiles []string
}

// Decrypt decrypts each resolved container into a file named after the
// name stored in it.
//
// Containers are first decoded to learn their output names, so corrupt
// containers and output collisions fail before any key derivation. A
// failing file does not stop the others; the returned error aggregates the
// failures.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	if !opts.DryRun {
		if err := opts.Credentials.validate(); err != nil {
			return nil, err
		}
	}

	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return nil, err
	}

	sources, err := files.ResolveFiles(opts.Patterns, baseDir, files.ForDecryption)
	if err != nil {
		return nil, err
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}
	outputDir := resolveOutputDir(opts.OutputDir, userConfig.Defaults.OutputDir)
	force := opts.Force || userConfig.Defaults.Overwrite

	targets := make([]target, len(sources))
	for i, src := range sources {
		targets[i] = planDecrypt(src, outputDir)
	}

	result := &DecryptResult{DryRun: opts.DryRun}

	if opts.DryRun {
		result.ExistingFiles = existingOutputs(targets)
		for _, t := range targets {
			result.Files = append(result.Files, FileResult{Source: t.Source, Output: t.Output, Err: t.Err})
			if t.Err == nil {
				result.SourceFiles = append(result.SourceFiles, t.Source)
				result.DecryptedFiles = append(result.DecryptedFiles, t.Output)
			}
		}
		return result, nil
	}

	claimOutputs(targets, force)

	results, batchErr := runBatch(ctx, len(targets), workerCount(opts.Workers), func(ctx context.Context, i int) FileResult {
		return decryptOne(targets[i], opts.Credentials)
	})

	result.Files = results
	result.SourceFiles, result.DecryptedFiles, result.BytesDecrypted = succeeded(results)

	if len(result.DecryptedFiles) > 0 || batchErr != nil {
		entry := audit.LogWithUser(audit.OpDecrypt)
		entry.Files = result.SourceFiles
		entry.Outputs = result.DecryptedFiles
		entry.Bytes = result.BytesDecrypted
		entry.Failed = failedCount(results)
		audit.Record(entry)
	}

	return result, batchErr
}

// planDecrypt decodes the container header to find its output path.
func planDecrypt(src, outputDir string) target {
	t := target{Source: src}

	blob, err := os.ReadFile(src)
	if err != nil {
		t.Err = fmt.Errorf("reading file: %w", err)
		return t
	}

	container, err := fortress.DecodeFileContainer(blob)
	if err != nil {
		t.Err = err
		return t
	}

	t.Output, t.Err = files.DecryptedPath(src, container.Metadata.Name, outputDir)
	return t
}

func decryptOne(t target, creds Credentials) FileResult {
	res := FileResult{Source: t.Source}
	if t.Err != nil {
		res.Err = t.Err
		return res
	}

	blob, err := os.ReadFile(t.Source)
	if err != nil {
		res.Err = fmt.Errorf("reading file: %w", err)
		return res
	}

	plaintext, _, err := fortress.DecryptFile(blob, creds.Password, creds.SecurityKey)
	if err != nil {
		res.Err = err
		return res
	}

	if err := utils.WriteFileAtomic(t.Output, plaintext, 0600); err != nil {
		res.Err = err
		return res
	}

	res.Output = t.Output
	res.Bytes = int64(len(plaintext))
	return res
}
