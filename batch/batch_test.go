package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedJobs(n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{Name: fmt.Sprintf("doc-%d.pdf", i)}
	}
	return jobs
}

func TestProcessAllSucceed(t *testing.T) {
	p := NewProcessorWithConfig(Config{Workers: 4})
	jobs := namedJobs(10)

	summary := p.Process(context.Background(), jobs, func(ctx context.Context, job Job) ([]byte, error) {
		return []byte(job.Name), nil
	})

	assert.Equal(t, 10, summary.Succeeded)
	assert.Zero(t, summary.Failed)
	assert.Zero(t, summary.Skipped)
	require.Len(t, summary.Results, 10)

	// Results come back in input order regardless of worker scheduling.
	for i, r := range summary.Results {
		assert.Equal(t, fmt.Sprintf("doc-%d.pdf", i), r.Name)
		assert.Equal(t, r.Name, string(r.Output))
		assert.NoError(t, r.Err)
	}
}

func TestProcessIsolatesFailures(t *testing.T) {
	p := NewProcessorWithConfig(Config{Workers: 2})
	jobs := namedJobs(5)
	boom := errors.New("unreadable")

	summary := p.Process(context.Background(), jobs, func(ctx context.Context, job Job) ([]byte, error) {
		if job.Name == "doc-2.pdf" {
			return nil, boom
		}
		return []byte("ok"), nil
	})

	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.ErrorIs(t, summary.Results[2].Err, boom)
	assert.NoError(t, summary.Results[1].Err)
	assert.NoError(t, summary.Results[3].Err)

	errs := summary.Errors()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)
}

func TestProcessContainsPanics(t *testing.T) {
	p := NewProcessorWithConfig(Config{Workers: 1})
	jobs := namedJobs(3)

	summary := p.Process(context.Background(), jobs, func(ctx context.Context, job Job) ([]byte, error) {
		if job.Name == "doc-1.pdf" {
			panic("malformed content stream")
		}
		return []byte("ok"), nil
	})

	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Error(t, summary.Results[1].Err)
	assert.Contains(t, summary.Results[1].Err.Error(), "malformed content stream")
}

func TestProcessEmptyBatch(t *testing.T) {
	p := NewProcessor()
	summary := p.Process(context.Background(), nil, func(ctx context.Context, job Job) ([]byte, error) {
		t.Fatal("must not be called")
		return nil, nil
	})

	assert.Empty(t, summary.Results)
	assert.Zero(t, summary.Succeeded)
}

func TestProcessBoundsConcurrency(t *testing.T) {
	p := NewProcessorWithConfig(Config{Workers: 3})
	jobs := namedJobs(20)

	var active, peak int64
	summary := p.Process(context.Background(), jobs, func(ctx context.Context, job Job) ([]byte, error) {
		n := atomic.AddInt64(&active, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
				break
			}
		}
		defer atomic.AddInt64(&active, -1)
		return []byte("ok"), nil
	})

	assert.Equal(t, 20, summary.Succeeded)
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3), "never more workers than configured")
}

func TestProcessCancellationSkipsUnstarted(t *testing.T) {
	p := NewProcessorWithConfig(Config{Workers: 1})
	jobs := namedJobs(6)
	ctx, cancel := context.WithCancel(context.Background())

	var started int32
	summary := p.Process(ctx, jobs, func(ctx context.Context, job Job) ([]byte, error) {
		if atomic.AddInt32(&started, 1) == 2 {
			cancel()
			// Hold the only worker so the feeder sees the cancelled
			// context before another task can be handed over.
			time.Sleep(50 * time.Millisecond)
		}
		return []byte("ok"), nil
	})

	assert.Positive(t, summary.Skipped, "cancellation must skip unstarted jobs")
	assert.Equal(t, len(jobs), summary.Succeeded+summary.Failed+summary.Skipped)

	for _, r := range summary.Results {
		if r.Output == nil {
			assert.Error(t, r.Err, "skipped jobs carry the cancellation error")
		}
	}
}

func TestProcessDefaultWorkerCount(t *testing.T) {
	p := NewProcessorWithConfig(Config{Workers: 0})
	summary := p.Process(context.Background(), namedJobs(2), func(ctx context.Context, job Job) ([]byte, error) {
		return []byte("ok"), nil
	})

	assert.Equal(t, 2, summary.Succeeded)
}
