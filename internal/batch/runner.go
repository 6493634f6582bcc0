// Package batch feeds an ordered list of addresses through the classifier
// and accounts for each run.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/email-validator/internal/pkg/logger"
	"github.com/ignite/email-validator/internal/validator"
)

// ReadAddresses loads candidate addresses from a text file, one per line.
// Lines are trimmed and blank lines dropped; the original order is kept.
func ReadAddresses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var addresses []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		addresses = append(addresses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}

	logger.Info("read addresses", "path", path, "count", len(addresses))
	return addresses, nil
}

// RunResult carries the outcome of one validation run. Results holds one
// entry per usable address, in input order.
type RunResult struct {
	RunID     string
	Results   []validator.Result
	StartedAt time.Time
	Duration  time.Duration
}

// PerSecond returns the processing rate for the run.
func (r *RunResult) PerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(len(r.Results)) / r.Duration.Seconds()
}

// Runner applies a classifier to every address in a batch.
type Runner struct {
	classifier *validator.Classifier
	workers    int
	onProgress func(done, total int)
}

// NewRunner returns a sequential runner.
func NewRunner(c *validator.Classifier) *Runner {
	return &Runner{classifier: c, workers: 1}
}

// SetWorkers sets how many addresses may be classified in parallel. One
// worker reproduces the strictly sequential stock behavior; higher values
// only overlap the MX lookups, never the result order.
func (r *Runner) SetWorkers(n int) {
	if n > 0 {
		r.workers = n
	}
}

// SetProgressFunc registers a callback invoked after each classified
// address with the count completed so far and the batch total. With more
// than one worker the callback may be invoked concurrently.
func (r *Runner) SetProgressFunc(fn func(done, total int)) {
	r.onProgress = fn
}

// Run classifies every non-blank address and returns the results in input
// order. A run always processes its full batch; ctx only bounds the
// individual MX lookups.
func (r *Runner) Run(ctx context.Context, addresses []string) *RunResult {
	usable := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if strings.TrimSpace(addr) != "" {
			usable = append(usable, addr)
		}
	}

	run := &RunResult{
		RunID:     uuid.New().String(),
		Results:   make([]validator.Result, len(usable)),
		StartedAt: time.Now(),
	}
	logger.Info("validation run started",
		"run_id", run.RunID, "addresses", len(usable), "workers", r.workers)

	if r.workers <= 1 {
		for i, addr := range usable {
			run.Results[i] = r.classifier.Classify(ctx, addr)
			r.reportProgress(i+1, len(usable))
		}
	} else {
		r.runParallel(ctx, usable, run.Results)
	}

	run.Duration = time.Since(run.StartedAt)
	logger.Info("validation run finished",
		"run_id", run.RunID, "addresses", len(usable),
		"duration", run.Duration.Round(time.Millisecond).String())
	return run
}

func (r *Runner) reportProgress(done, total int) {
	if r.onProgress != nil {
		r.onProgress(done, total)
	}
}

// runParallel fans indexes out to a fixed pool. Each worker writes its
// result into the slot owned by that index, so the output order matches
// the sequential mode exactly.
func (r *Runner) runParallel(ctx context.Context, addresses []string, results []validator.Result) {
	indexes := make(chan int, r.workers*2)
	var done int64
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = r.classifier.Classify(ctx, addresses[i])
				r.reportProgress(int(atomic.AddInt64(&done, 1)), len(addresses))
			}
		}()
	}

	for i := range addresses {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
}
