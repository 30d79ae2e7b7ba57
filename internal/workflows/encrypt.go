package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/fortress/internal/audit"
	"github.com/PolarWolf314/fortress/internal/configs"
	"github.com/PolarWolf314/fortress/internal/files"
	"github.com/PolarWolf314/fortress/internal/fortress"
	"github.com/PolarWolf314/fortress/internal/utils"
)

// EncryptOptions configures the encrypt workflow.
type EncryptOptions struct {
	// Patterns are files, directories or globs to encrypt.
	Patterns []string

	// BaseDir resolves relative patterns. Defaults to the working directory.
	BaseDir string

	// OutputDir receives the containers. Defaults to the configured output
	// directory, then to each source file's directory.
	OutputDir string

	// Force overwrites existing containers.
	Force bool

	// DryRun reports what would be written without deriving keys.
	DryRun bool

	// Workers bounds parallel encryptions. 0 uses the configured default.
	Workers int

	Credentials Credentials
}

// EncryptResult contains the outcome of an encrypt operation.
type EncryptResult struct {
	// SourceFiles and EncryptedFiles list the successful pairs, in order.
	SourceFiles    []string
	EncryptedFiles []string

	// Files holds one entry per resolved input, including failures.
	Files []FileResult

	// BytesEncrypted is the plaintext volume of the successful files.
	BytesEncrypted int64

	DryRun bool

	// ExistingFiles lists outputs that already exist (dry run only).
	ExistingFiles []string
}

// Encrypt encrypts each resolved file into a .fortress container.
//
// Files are processed in parallel. A failing file does not stop the others:
// the result lists every file and the returned error aggregates the
// failures. Returns ErrInvalidInput when credentials are missing and
// ErrNoFilesFound when nothing matches.
func Encrypt(ctx context.Context, opts EncryptOptions) (*EncryptResult, error) {
	if !opts.DryRun {
		if err := opts.Credentials.validate(); err != nil {
			return nil, err
		}
	}

	baseDir, err := resolveBaseDir(opts.BaseDir)
	if err != nil {
		return nil, err
	}

	sources, err := files.ResolveFiles(opts.Patterns, baseDir, files.ForEncryption)
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
		targets[i] = target{Source: src, Output: files.EncryptedPath(src, outputDir)}
	}

	result := &EncryptResult{DryRun: opts.DryRun}

	if opts.DryRun {
		result.ExistingFiles = existingOutputs(targets)
		for _, t := range targets {
			result.SourceFiles = append(result.SourceFiles, t.Source)
			result.EncryptedFiles = append(result.EncryptedFiles, t.Output)
			result.Files = append(result.Files, FileResult{Source: t.Source, Output: t.Output})
		}
		return result, nil
	}

	claimOutputs(targets, force)

	results, batchErr := runBatch(ctx, len(targets), workerCount(opts.Workers), func(ctx context.Context, i int) FileResult {
		return encryptOne(targets[i], opts.Credentials)
	})

	result.Files = results
	result.SourceFiles, result.EncryptedFiles, result.BytesEncrypted = succeeded(results)

	if len(result.EncryptedFiles) > 0 || batchErr != nil {
		entry := audit.LogWithUser(audit.OpEncrypt)
		entry.Files = result.SourceFiles
		entry.Outputs = result.EncryptedFiles
		entry.Bytes = result.BytesEncrypted
		entry.Failed = failedCount(results)
		audit.Record(entry)
	}

	return result, batchErr
}

func encryptOne(t target, creds Credentials) FileResult {
	res := FileResult{Source: t.Source}
	if t.Err != nil {
		res.Err = t.Err
		return res
	}

	data, err := os.ReadFile(t.Source)
	if err != nil {
		res.Err = fmt.Errorf("reading file: %w", err)
		return res
	}

	blob, err := fortress.EncryptFile(fortress.File{
		Name:        filepath.Base(t.Source),
		ContentType: DetectContentType(t.Source),
		Data:        data,
	}, creds.Password, creds.SecurityKey)
	if err != nil {
		res.Err = err
		return res
	}

	if err := utils.WriteFileAtomic(t.Output, blob, 0600); err != nil {
		res.Err = err
		return res
	}

	res.Output = t.Output
	res.Bytes = int64(len(data))
	return res
}
