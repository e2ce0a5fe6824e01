// Package workers runs tile fill jobs on a fixed set of goroutines.
//
// Two dispatchers share one contract: Dispatch hands the same job to every
// worker and returns only when all of them report idle again, so a caller
// never observes a partially filled tile.
//
//   - Persistent keeps its workers alive between dispatches and coordinates
//     them with a mutex and two conditions ("work available", "all idle").
//   - Blocking starts one goroutine per worker for each dispatch and joins
//     them before returning.
package workers

import (
	"errors"
)

var (
	// ErrClosed is returned by Dispatch after Close.
	ErrClosed = errors.New("dispatcher is closed")

	// ErrWorkerStart is returned by New when a worker's setup fails.
	ErrWorkerStart = errors.New("worker failed to start")
)

// Job is executed once by every worker of a dispatch. worker is the index of
// the executing worker in [0, Workers()).
type Job func(worker int) error

// Dispatcher distributes a Job to all workers and waits for completion.
type Dispatcher interface {
	// Dispatch runs job on every worker and blocks until all are idle.
	// It returns the first error reported by a worker, if any.
	Dispatch(job Job) error

	// Workers returns the number of workers each dispatch runs on.
	Workers() int

	// Close stops and joins all workers. Calling it again is a no-op.
	Close() error
}

// Config holds the settings for creating a Dispatcher.
type Config struct {
	// Number of workers, at least 1.
	Workers int

	// Spawn and join goroutines per dispatch instead of keeping them.
	Blocking bool

	// Optional per-worker setup run by persistent workers before they report
	// idle for the first time (e.g. CPU pinning). A non-nil error aborts the
	// pool start. The returned release function runs when the worker stops.
	Setup func(worker int) (release func(), err error)
}

// New creates the dispatcher selected by conf. A single worker, or an
// explicit Blocking request, selects the Blocking dispatcher.
func New(conf Config) (Dispatcher, error) {
	n := max(conf.Workers, 1)

	if conf.Blocking || n <= 1 {
		return newBlocking(n), nil
	}
	return newPersistent(n, conf.Setup)
}
