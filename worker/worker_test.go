package worker

import (
	"sync/atomic"
	"testing"
)

func TestRunWaitsForEveryJob(t *testing.T) {
	var done atomic.Int32
	jobs := make([]func(), 64)
	for i := range jobs {
		jobs[i] = func() { done.Add(1) }
	}
	Run(jobs...)
	if n := done.Load(); n != 64 {
		t.Fatalf("expected 64 jobs to run, got %d", n)
	}
}

func TestPanickingJobKeepsPoolAlive(t *testing.T) {
	var done atomic.Int32
	jobs := []func(){func() { panic("scenario exploded") }}
	for range 32 {
		jobs = append(jobs, func() { done.Add(1) })
	}
	Run(jobs...)
	if n := done.Load(); n != 32 {
		t.Fatalf("expected the remaining jobs to run, got %d", n)
	}

	// Every worker must still be serving the queue.
	Run(func() { done.Add(1) })
	if n := done.Load(); n != 33 {
		t.Fatalf("expected the pool to keep working after a panic, got %d", n)
	}
}
