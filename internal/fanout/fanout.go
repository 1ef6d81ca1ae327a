// Package fanout runs a set of jobs concurrently with a bounded number of
// goroutines and hands back per-slot results in submission order.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

const defaultMaxConcurrent = 8

// Job produces one result. The index is the job's slot in the result slice.
type Job[T any] func(index int) (T, error)

// Runner collects jobs and executes them under a concurrency cap.
// Result and error slices are parallel to the jobs that were added, so the
// caller decides per slot whether a failure drops the element or fails the
// whole batch.
type Runner[T any] struct {
	jobs          []Job[T]
	maxConcurrent int
}

// NewRunner returns an empty runner with the default concurrency cap.
func NewRunner[T any]() *Runner[T] {
	return &Runner[T]{maxConcurrent: defaultMaxConcurrent}
}

// SetMaxConcurrent caps how many jobs run at once. Zero or negative keeps
// the default.
func (r *Runner[T]) SetMaxConcurrent(n int) *Runner[T] {
	if n > 0 {
		r.maxConcurrent = n
	}
	return r
}

// AddJob appends jobs to the batch.
func (r *Runner[T]) AddJob(jobs ...Job[T]) *Runner[T] {
	r.jobs = append(r.jobs, jobs...)
	return r
}

// Len reports how many jobs are queued.
func (r *Runner[T]) Len() int { return len(r.jobs) }

// Run executes every queued job and blocks until all finish. The returned
// slices are indexed by submission order. The error return covers the run
// itself (no jobs, context cancelled while scheduling), not individual job
// failures.
func (r *Runner[T]) Run(ctx context.Context) ([]T, []error, error) {
	if len(r.jobs) == 0 {
		return nil, nil, fmt.Errorf("no jobs to run")
	}

	results := make([]T, len(r.jobs))
	errs := make([]error, len(r.jobs))

	limit := min(r.maxConcurrent, len(r.jobs))
	sem := semaphore.NewWeighted(int64(limit))

	for i, job := range r.jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, nil, err
		}

		go func(slot int, job Job[T]) {
			defer sem.Release(1)
			results[slot], errs[slot] = job(slot)
		}(i, job)
	}

	// Draining the full weight waits for every in-flight job.
	if err := sem.Acquire(ctx, int64(limit)); err != nil {
		return nil, nil, err
	}

	return results, errs, nil
}
