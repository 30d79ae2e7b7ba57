package workflows

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/PolarWolf314/fortress/internal/configs"
)

func TestRunBatch_PreservesOrder(t *testing.T) {
	results, err := runBatch(context.Background(), 10, 4, func(ctx context.Context, i int) FileResult {
		// Later indexes finish first.
		time.Sleep(time.Duration(10-i) * time.Millisecond)
		return FileResult{Source: fmt.Sprint(i), Output: fmt.Sprint(i, ".out")}
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}

	for i, r := range results {
		if r.Source != fmt.Sprint(i) {
			t.Errorf("Result %d has source %q", i, r.Source)
		}
	}
}

func TestRunBatch_RespectsWorkerLimit(t *testing.T) {
	const limit = 3
	var inFlight, peak atomic.Int32

	_, err := runBatch(context.Background(), 20, limit, func(ctx context.Context, i int) FileResult {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return FileResult{Source: fmt.Sprint(i)}
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}

	if p := peak.Load(); p > limit {
		t.Errorf("Expected at most %d tasks in flight, saw %d", limit, p)
	}
}

func TestRunBatch_AggregatesFailures(t *testing.T) {
	errOdd := errors.New("odd")
	var ran atomic.Int32

	results, err := runBatch(context.Background(), 6, 2, func(ctx context.Context, i int) FileResult {
		ran.Add(1)
		if i%2 == 1 {
			return FileResult{Source: fmt.Sprint(i), Err: errOdd}
		}
		return FileResult{Source: fmt.Sprint(i), Output: "ok"}
	})

	if ran.Load() != 6 {
		t.Errorf("Expected every task to run, ran %d", ran.Load())
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 3 {
		t.Fatalf("Expected 3 aggregated failures, got: %v", err)
	}
	if !errors.Is(err, errOdd) {
		t.Error("Expected aggregated error to wrap the task errors")
	}
	if failedCount(results) != 3 {
		t.Errorf("Expected failedCount 3, got %d", failedCount(results))
	}
}

func TestRunBatch_ZeroWorkersStillRuns(t *testing.T) {
	results, err := runBatch(context.Background(), 2, 0, func(ctx context.Context, i int) FileResult {
		return FileResult{Source: fmt.Sprint(i), Output: "x"}
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if len(results) != 2 || results[1].Output != "x" {
		t.Errorf("Unexpected results %+v", results)
	}
}

func TestSucceeded(t *testing.T) {
	results := []FileResult{
		{Source: "a", Output: "a.out", Bytes: 3},
		{Source: "b", Err: errors.New("boom")},
		{Source: "c", Output: "c.out", Bytes: 4},
	}

	sources, outputs, total := succeeded(results)
	if len(sources) != 2 || sources[1] != "c" || outputs[0] != "a.out" || total != 7 {
		t.Errorf("Unexpected split: %v %v %d", sources, outputs, total)
	}
}

func TestWorkerCount(t *testing.T) {
	setupWorkflowEnv(t)

	if got := workerCount(0); got != configs.DefaultWorkers {
		t.Errorf("Expected default %d workers, got %d", configs.DefaultWorkers, got)
	}
	if got := workerCount(2); got != 2 {
		t.Errorf("Expected explicit 2 workers, got %d", got)
	}
	if got := workerCount(1000); got != configs.MaxWorkers {
		t.Errorf("Expected cap at %d, got %d", configs.MaxWorkers, got)
	}

	saveTestConfig(t, func(c *configs.UserConfig) { c.Defaults.Workers = 7 })
	if got := workerCount(0); got != 7 {
		t.Errorf("Expected configured 7 workers, got %d", got)
	}
}
