package cmat

import (
	"time"

	"github.com/utkarsh5026/corrmat/internal/kernel"
	"github.com/utkarsh5026/corrmat/internal/tile"
	"github.com/utkarsh5026/corrmat/internal/workers"
)

// accessor is the element access of one strategy. Both get and cget take
// row < col.
type accessor[F kernel.Float] interface {
	// get is random access.
	get(row, col int) F

	// cget is traversal access; it may refill a cache.
	cget(row, col int) (F, error)

	// strip returns the column bounds of the window a traversal at col
	// moves within.
	strip(col int) (start, end int)

	stats() (fills int, total time.Duration)
	close() error
}

type onDemand[F kernel.Float] struct {
	set *kernel.Set[F]
	v   int
}

func (a *onDemand[F]) get(row, col int) F { return a.set.Pair(row, col) }

func (a *onDemand[F]) cget(row, col int) (F, error) { return a.set.Pair(row, col), nil }

func (a *onDemand[F]) strip(int) (int, int) { return 0, a.v }

func (a *onDemand[F]) stats() (int, time.Duration) { return 0, 0 }

func (a *onDemand[F]) close() error {
	a.set = nil
	return nil
}

type tiled[F kernel.Float] struct {
	onDemand[F]
	k     int
	cache *tile.Cache[F]
	disp  workers.Dispatcher
}

func (a *tiled[F]) cget(row, col int) (F, error) { return a.cache.Get(row, col) }

func (a *tiled[F]) strip(col int) (int, int) {
	if w := a.cache.Window(); w.Valid() && col >= w.ColStart && col < w.ColEnd {
		return w.ColStart, w.ColEnd
	}
	start := col / a.k * a.k
	return start, min(start+a.k, a.v)
}

func (a *tiled[F]) stats() (int, time.Duration) { return a.cache.Stats() }

func (a *tiled[F]) close() error {
	err := a.disp.Close()
	a.cache.Release()
	a.set = nil
	return err
}

type fullStore[F kernel.Float] struct {
	tri []F
	w   tile.Window
	v   int
}

func (a *fullStore[F]) get(row, col int) F { return a.tri[a.w.Index(row, col)] }

func (a *fullStore[F]) cget(row, col int) (F, error) { return a.tri[a.w.Index(row, col)], nil }

func (a *fullStore[F]) strip(int) (int, int) { return 0, a.v }

func (a *fullStore[F]) stats() (int, time.Duration) { return 0, 0 }

func (a *fullStore[F]) close() error {
	a.tri = nil
	return nil
}
