// Package batch applies one recipe to many files concurrently.
//
// Each pool goroutine owns its own Processor, and so its own worker, so
// files run in parallel while every worker still handles one job at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/user/pixelworker/pkg/orchestrator"
	"github.com/user/pixelworker/pkg/ports"
)

// Processor runs a recipe over one file. *orchestrator.Orchestrator implements it.
type Processor interface {
	Run(ctx context.Context, config orchestrator.Config) (orchestrator.RunResult, error)
}

// ProcessorFactory creates the Processor for one pool goroutine together
// with the function that releases it.
type ProcessorFactory func() (Processor, func() error)

// Item is one input/output pair.
type Item struct {
	Input  string
	Output string
}

// ItemResult is the outcome of one Item.
type ItemResult struct {
	Index  int
	Item   Item
	Result orchestrator.RunResult
	Err    error
}

// Result collects all item outcomes in input order.
type Result struct {
	Items     []ItemResult
	Succeeded int
	Failed    int
}

// Runner is a fixed-size pool of processors.
type Runner struct {
	factory    ProcessorFactory
	logger     ports.Logger
	numWorkers int
}

// New creates a Runner. numWorkers <= 0 uses the number of CPUs.
func New(factory ProcessorFactory, logger ports.Logger, numWorkers int) *Runner {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Runner{
		factory:    factory,
		logger:     logger.WithComponent("batch"),
		numWorkers: numWorkers,
	}
}

// Plan maps inputs to output paths in outDir. ext replaces the input
// extension; an empty ext keeps it, except for formats that cannot be
// written, which become PNG.
func Plan(inputs []string, outDir, ext string) []Item {
	items := make([]Item, len(inputs))
	for i, in := range inputs {
		base := filepath.Base(in)
		inExt := filepath.Ext(base)
		stem := strings.TrimSuffix(base, inExt)

		outExt := ext
		if outExt == "" {
			outExt = inExt
			switch ports.FormatFromPath(in) {
			case ports.FormatWebP, ports.FormatUnknown:
				outExt = ".png"
			}
		}
		if !strings.HasPrefix(outExt, ".") {
			outExt = "." + outExt
		}

		items[i] = Item{Input: in, Output: filepath.Join(outDir, stem+outExt)}
	}
	return items
}

// Run applies base to every item. Per-item failures do not stop the batch;
// they are reported in the Result and joined into the returned error.
func (r *Runner) Run(ctx context.Context, base orchestrator.Config, items []Item) (Result, error) {
	if len(items) == 0 {
		return Result{}, nil
	}

	numWorkers := r.numWorkers
	if numWorkers > len(items) {
		numWorkers = len(items)
	}
	r.logger.Debug("Processing %d files with %d workers", len(items), numWorkers)

	jobs := make(chan int, len(items))
	results := make(chan ItemResult, len(items))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go r.worker(ctx, &wg, base, items, jobs, results)
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]ItemResult, 0, len(items))
	for res := range results {
		collected = append(collected, res)
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].Index < collected[j].Index
	})

	out := Result{Items: collected}
	var errs []error
	for _, res := range collected {
		if res.Err != nil {
			out.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", res.Item.Input, res.Err))
		} else {
			out.Succeeded++
		}
	}
	r.logger.Debug("Batch completed: %d succeeded, %d failed", out.Succeeded, out.Failed)

	return out, errors.Join(errs...)
}

// worker processes item indexes from jobs with its own Processor.
func (r *Runner) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	base orchestrator.Config,
	items []Item,
	jobs <-chan int,
	results chan<- ItemResult,
) {
	defer wg.Done()

	proc, release := r.factory()
	defer func() {
		if err := release(); err != nil {
			r.logger.Warn("Failed to release worker: %s", err)
		}
	}()

	for idx := range jobs {
		item := items[idx]
		res := ItemResult{Index: idx, Item: item}

		if err := ctx.Err(); err != nil {
			res.Err = err
			results <- res
			continue
		}

		cfg := base
		cfg.InputPath = item.Input
		cfg.OutputPath = item.Output
		res.Result, res.Err = proc.Run(ctx, cfg)
		results <- res
	}
}
