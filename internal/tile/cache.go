package tile

import (
	"fmt"
	"time"

	"github.com/utkarsh5026/corrmat/internal/kernel"
	"github.com/utkarsh5026/corrmat/internal/workers"
)

// PairFunc computes the element (row, col), row < col.
type PairFunc[F kernel.Float] func(row, col int) F

// FillEvent describes one completed refill.
type FillEvent struct {
	Window   Window
	Elements int
	Duration time.Duration
}

// Cache holds one window of at most k*k elements and refills it through a
// dispatcher whenever a read misses.
type Cache[F kernel.Float] struct {
	k, v   int
	buf    []F
	win    Window
	split  Split
	pair   PairFunc[F]
	disp   workers.Dispatcher
	onFill func(FillEvent)

	fills    int
	fillTime time.Duration
}

// NewCache allocates the buffer of a cache with tile edge k for a v×v
// matrix. onFill may be nil.
func NewCache[F kernel.Float](v, k int, pair PairFunc[F], disp workers.Dispatcher, split Split, onFill func(FillEvent)) (*Cache[F], error) {
	if k <= 0 || k >= v {
		return nil, fmt.Errorf("tile edge %d outside (0, %d)", k, v)
	}
	return &Cache[F]{
		k:      k,
		v:      v,
		buf:    make([]F, k*k),
		win:    Invalid,
		split:  split,
		pair:   pair,
		disp:   disp,
		onFill: onFill,
	}, nil
}

// Get returns element (row, col), row < col, loading the next window first
// if the element is not resident.
func (c *Cache[F]) Get(row, col int) (F, error) {
	if !c.win.Contains(row, col) {
		if err := c.Refill(row, col); err != nil {
			var zero F
			return zero, err
		}
	}
	return c.buf[c.win.Index(row, col)], nil
}

// Refill loads the window following the current one for a miss at
// (row, col). Workers write disjoint parts of the buffer; Dispatch returns
// only after all of them are done. On failure the cache is left empty.
func (c *Cache[F]) Refill(row, col int) error {
	w := Next(c.win, row, col, c.k, c.v)
	blocks := Partition(w, c.disp.Workers(), c.split)
	buf, pair := c.buf, c.pair

	start := time.Now()
	err := c.disp.Dispatch(func(worker int) error {
		blocks[worker].Each(func(r, col int) {
			buf[w.Index(r, col)] = pair(r, col)
		})
		return nil
	})
	if err != nil {
		c.win = Invalid
		return fmt.Errorf("fill tile rows [%d,%d) cols [%d,%d): %w", w.RowStart, w.RowEnd, w.ColStart, w.ColEnd, err)
	}
	elapsed := time.Since(start)

	c.win = w
	c.fills++
	c.fillTime += elapsed
	if c.onFill != nil {
		c.onFill(FillEvent{Window: w, Elements: w.Size(), Duration: elapsed})
	}
	return nil
}

// Window returns the resident window.
func (c *Cache[F]) Window() Window { return c.win }

// Capacity returns the buffer length in elements.
func (c *Cache[F]) Capacity() int { return len(c.buf) }

// Stats returns the number of refills and their accumulated duration.
func (c *Cache[F]) Stats() (fills int, total time.Duration) {
	return c.fills, c.fillTime
}

// Release drops the buffer; the cache is unusable afterwards.
func (c *Cache[F]) Release() {
	c.buf = nil
	c.win = Invalid
}
