// Package batch runs per-document processing across a bounded worker pool.
// Documents are independent, so the pool imposes no ordering between them;
// results come back in input order and one document's failure never aborts
// its siblings.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Job is one document to process
type Job struct {
	// Name is the document name, echoed on the result
	Name string

	// Data is the raw PDF byte stream
	Data []byte
}

// Result pairs a job with its outcome. Exactly one of Output and Err is
// meaningful.
type Result struct {
	// Name is the job's document name
	Name string

	// Output is the serialized record produced for the document
	Output []byte

	// Err is the per-document failure, nil on success
	Err error
}

// Summary reports the outcome of one batch run
type Summary struct {
	// Results holds one entry per job, in input order
	Results []Result

	// Succeeded counts jobs that produced output
	Succeeded int

	// Failed counts jobs that returned an error
	Failed int

	// Skipped counts jobs never started because the batch was cancelled
	Skipped int
}

// Errors returns the failures in input order
func (s *Summary) Errors() []error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// ProcessFunc produces a document's serialized record
type ProcessFunc func(ctx context.Context, job Job) ([]byte, error)

// Config holds configuration for the worker pool
type Config struct {
	// Workers is the pool size (default: number of CPUs)
	Workers int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
	}
}

// Processor fans jobs out to a fixed number of workers
type Processor struct {
	config Config
}

// NewProcessor creates a processor with default configuration
func NewProcessor() *Processor {
	return NewProcessorWithConfig(DefaultConfig())
}

// NewProcessorWithConfig creates a processor with custom configuration
func NewProcessorWithConfig(config Config) *Processor {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Processor{config: config}
}

// Process runs fn over every job and collects a Summary. Panics inside fn
// are contained and surface as that job's error. Cancelling the context
// stops scheduling of unstarted jobs; jobs already running finish and
// report normally, cancelled ones are marked skipped.
func (p *Processor) Process(ctx context.Context, jobs []Job, fn ProcessFunc) *Summary {
	summary := &Summary{
		Results: make([]Result, len(jobs)),
	}
	if len(jobs) == 0 {
		return summary
	}

	workers := p.config.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	type task struct {
		index int
		job   Job
	}
	tasks := make(chan task)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				summary.Results[t.index] = p.run(ctx, t.job, fn)
			}
		}()
	}

feed:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			for j := i; j < len(jobs); j++ {
				summary.Results[j] = Result{
					Name: jobs[j].Name,
					Err:  fmt.Errorf("%s: %w", jobs[j].Name, ctx.Err()),
				}
			}
			summary.Skipped = len(jobs) - i
			break feed
		case tasks <- task{index: i, job: job}:
		}
	}
	close(tasks)
	wg.Wait()

	for _, r := range summary.Results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	summary.Failed -= summary.Skipped

	return summary
}

// run executes fn for one job with panic containment
func (p *Processor) run(ctx context.Context, job Job, fn ProcessFunc) (result Result) {
	result.Name = job.Name
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("%s: processing panicked: %v", job.Name, r)
		}
	}()

	out, err := fn(ctx, job)
	if err != nil {
		result.Err = err
		return result
	}
	result.Output = out
	return result
}
