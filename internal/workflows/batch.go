package workflows

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/PolarWolf314/fortress/internal/configs"
)

// FileResult is the outcome for one file of a batch.
type FileResult struct {
	Source string
	Output string
	Bytes  int64
	Err    error
}

type fileTask func(ctx context.Context, index int) FileResult

// runBatch runs task for every index with at most workers in flight. Every
// task runs to completion; failures are collected rather than cancelling
// the rest. The returned error is nil, a *multierror.Error of per-file
// failures, or the context error.
func runBatch(ctx context.Context, n, workers int, task fileTask) ([]FileResult, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = task(gctx, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.Source, r.Err))
		}
	}

	return results, merr.ErrorOrNil()
}

// succeeded splits results into the ones without an error.
func succeeded(results []FileResult) (sources, outputs []string, total int64) {
	for _, r := range results {
		if r.Err != nil || r.Output == "" {
			continue
		}
		sources = append(sources, r.Source)
		outputs = append(outputs, r.Output)
		total += r.Bytes
	}
	return sources, outputs, total
}

func failedCount(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// workerCount applies the configured default when the option is unset.
func workerCount(requested int) int {
	if requested > 0 {
		if requested > configs.MaxWorkers {
			return configs.MaxWorkers
		}
		return requested
	}
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return configs.DefaultWorkers
	}
	return userConfig.Defaults.Workers
}
