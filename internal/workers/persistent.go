package workers

import (
	"fmt"
	"sync"
)

type slotState int

const (
	slotEmpty slotState = iota
	slotAssigned
	slotStop
)

// slot is the job slot of one worker.
type slot struct {
	state slotState
	job   Job
}

// Persistent is a pool of long-lived workers. Each worker cycles
// Idle -> Assigned -> Running -> Idle until it finds the stop sentinel in
// its slot while idle.
type Persistent struct {
	n     int
	mu    sync.Mutex
	work  *sync.Cond // signaled when slots were filled
	idle  *sync.Cond // signaled when the last worker became idle
	count int        // number of idle workers
	slots []slot

	err      error // first job error of the running dispatch
	startErr error
	closed   bool

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// newPersistent starts n workers and waits until every one of them has
// reported idle, so no job can reach a worker that is not yet waiting.
func newPersistent(n int, setup func(int) (func(), error)) (*Persistent, error) {
	p := &Persistent{
		n:     n,
		slots: make([]slot, n),
	}
	p.work = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	for i := range n {
		p.wg.Add(1)
		go p.worker(i, setup)
	}

	p.mu.Lock()
	for p.count < p.n {
		p.idle.Wait()
	}
	err := p.startErr
	p.mu.Unlock()

	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("%w: %w", ErrWorkerStart, err)
	}

	debugLog("persistent pool started: workers=%d", n)
	return p, nil
}

func (p *Persistent) Workers() int { return p.n }

// Dispatch assigns job to every worker, wakes them and waits until all have
// reported idle again.
func (p *Persistent) Dispatch(job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	p.count = 0
	p.err = nil
	for i := range p.slots {
		p.slots[i] = slot{state: slotAssigned, job: job}
	}
	p.work.Broadcast()

	for p.count < p.n {
		p.idle.Wait()
	}
	return p.err
}

// Close writes the stop sentinel into every slot, wakes all workers and
// joins them.
func (p *Persistent) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		for i := range p.slots {
			p.slots[i] = slot{state: slotStop}
		}
		p.count = 0
		p.work.Broadcast()
		p.mu.Unlock()

		p.wg.Wait()
		debugLog("persistent pool stopped: workers=%d", p.n)
	})
	return nil
}

func (p *Persistent) worker(id int, setup func(int) (func(), error)) {
	defer p.wg.Done()

	if setup != nil {
		release, err := setup(id)
		if err != nil {
			p.mu.Lock()
			if p.startErr == nil {
				p.startErr = fmt.Errorf("worker %d: %w", id, err)
			}
			p.slots[id].state = slotStop
			p.reportIdleLocked()
			p.mu.Unlock()
			return
		}
		if release != nil {
			defer release()
		}
	}

	p.mu.Lock()
	p.reportIdleLocked()
	for {
		for p.slots[id].state == slotEmpty {
			p.work.Wait()
		}
		if p.slots[id].state == slotStop {
			p.mu.Unlock()
			return
		}

		job := p.slots[id].job
		p.mu.Unlock()

		err := runJob(job, id)

		p.mu.Lock()
		if err != nil && p.err == nil {
			p.err = err
		}
		if p.slots[id].state == slotAssigned {
			p.slots[id] = slot{}
		}
		p.reportIdleLocked()
	}
}

// reportIdleLocked counts the caller as idle and wakes the dispatcher once
// all workers are. p.mu must be held.
func (p *Persistent) reportIdleLocked() {
	p.count++
	if p.count == p.n {
		p.idle.Signal()
	}
}
