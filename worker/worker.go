package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for {
		f, ok := <-workerQueue
		if !ok {
			return
		}
		run(f)
	}
}

// run executes f, reporting a panic to sentry instead of taking the worker down with it.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to run on a worker. To be used by a function that may be CPU intensive, such as playing back a
// scenario. Submit blocks while the queue is full.
func Submit(f func()) {
	workerQueue <- f
}

// Run submits every job and waits until all of them have returned or panicked.
func Run(jobs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for _, job := range jobs {
		Submit(func() {
			defer wg.Done()
			job()
		})
	}
	wg.Wait()
}
