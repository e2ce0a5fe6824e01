package workers

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Blocking runs each dispatch on freshly started goroutines and joins them
// before returning. It needs no idle/work signaling since every goroutine
// has exactly one job.
type Blocking struct {
	n      int
	closed atomic.Bool
}

func newBlocking(n int) *Blocking {
	return &Blocking{n: n}
}

func (b *Blocking) Workers() int { return b.n }

func (b *Blocking) Dispatch(job Job) error {
	if b.closed.Load() {
		return ErrClosed
	}

	var g errgroup.Group
	for i := range b.n {
		g.Go(func() error {
			return runJob(job, i)
		})
	}
	return g.Wait()
}

func (b *Blocking) Close() error {
	b.closed.Store(true)
	return nil
}
