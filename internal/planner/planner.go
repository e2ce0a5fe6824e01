// Package planner decides, once per matrix, how elements are stored: computed
// on demand, cached in a bounded tile, or precomputed as the full upper
// triangle. Resolve is a pure function of its Request.
package planner

import (
	"errors"
	"fmt"
	"math"
)

// Strategy is the storage/compute strategy of a matrix.
type Strategy int

const (
	OnDemand Strategy = iota
	TiledCache
	FullyStored
)

func (s Strategy) String() string {
	switch s {
	case OnDemand:
		return "on-demand"
	case TiledCache:
		return "tiled-cache"
	case FullyStored:
		return "fully-stored"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

const (
	// Auto requests automatic resolution of threads or tile size.
	Auto = -1

	// MaxThreads is the largest accepted worker count.
	MaxThreads = 1024

	// DefaultTile is the tile edge used when the whole triangle does not fit.
	DefaultTile = 1024

	// DefaultMaxMemoryGiB is the budget used when none is given.
	DefaultMaxMemoryGiB = 2.0

	// maxTiledThreads is the largest thread count for which a 1024 tile is
	// still preferred over computing on demand.
	maxTiledThreads = 6

	gib = 1 << 30
)

// ErrInvalidRequest is returned for requests no plan can satisfy.
var ErrInvalidRequest = errors.New("invalid plan request")

// Request holds everything the selection depends on.
type Request struct {
	// Entity count and sample count, both > 1.
	V, T int

	// Requested worker count; Auto uses NumCPU, 0 is treated as 1.
	Threads int

	// Requested tile edge: Auto, 0 (no cache), 0 < Tile < V (bounded tile)
	// or V (store the whole triangle).
	Tile int

	// Memory budget in GiB; negative means DefaultMaxMemoryGiB.
	MaxMemoryGiB float64

	// Size in bytes of one matrix element.
	ElemSize int

	// Logical processor count used for Threads == Auto.
	NumCPU int
}

// Plan is a resolved Request. No field holds Auto.
type Plan struct {
	Strategy    Strategy
	Threads     int
	Tile        int
	BudgetBytes uint64

	// Advisory messages about downgrades forced by the budget.
	Warnings []string
}

// Elements returns the number of strictly upper triangle elements of a V×V
// matrix.
func Elements(v int) uint64 {
	return uint64(v) * uint64(v-1) / 2
}

// Resolve selects the strategy and its parameters. Order matters: an
// explicit tile size is honored first and only corrected for the budget.
func Resolve(r Request) (Plan, error) {
	if r.V < 2 || r.T < 2 {
		return Plan{}, fmt.Errorf("%w: V=%d T=%d, both must be > 1", ErrInvalidRequest, r.V, r.T)
	}
	if r.ElemSize <= 0 {
		return Plan{}, fmt.Errorf("%w: element size %d", ErrInvalidRequest, r.ElemSize)
	}

	p := Plan{Threads: r.Threads, Tile: r.Tile}

	if p.Threads == Auto {
		p.Threads = max(r.NumCPU, 1)
	}
	if p.Threads == 0 {
		p.Threads = 1
	}
	if p.Threads < 1 || p.Threads > MaxThreads {
		return Plan{}, fmt.Errorf("%w: threads %d outside [1, %d]", ErrInvalidRequest, r.Threads, MaxThreads)
	}
	if p.Tile < Auto || p.Tile > r.V {
		return Plan{}, fmt.Errorf("%w: tile size %d outside [0, %d]", ErrInvalidRequest, r.Tile, r.V)
	}

	gibs := r.MaxMemoryGiB
	if math.IsNaN(gibs) || math.IsInf(gibs, 0) {
		return Plan{}, fmt.Errorf("%w: memory budget %v GiB", ErrInvalidRequest, gibs)
	}
	if gibs < 0 {
		gibs = DefaultMaxMemoryGiB
	}
	if bytes := gibs * gib; bytes >= math.MaxUint64 {
		p.BudgetBytes = math.MaxUint64
	} else {
		p.BudgetBytes = uint64(bytes)
	}

	size := uint64(r.ElemSize)
	full := Elements(r.V) * size

	if p.Tile == r.V && full > p.BudgetBytes {
		p.Tile = 0
		if p.Threads <= maxTiledThreads && DefaultTile < r.V {
			p.Tile = DefaultTile
		}
		p.warn("tile size set to %d to enforce the memory limit of %d bytes (full triangle needs %d)",
			p.Tile, p.BudgetBytes, full)
	}

	if p.Tile > 0 && p.Tile < r.V {
		if uint64(p.Tile)*uint64(p.Tile)*size > p.BudgetBytes {
			tile := p.Tile
			p.Tile = 0
			p.warn("tile size set to 0 to enforce the memory limit of %d bytes (tile %d needs %d)",
				p.BudgetBytes, tile, uint64(tile)*uint64(tile)*size)
		}
	}

	if p.Tile == Auto {
		switch {
		case full <= p.BudgetBytes:
			p.Tile = r.V
		case DefaultTile*DefaultTile*size <= p.BudgetBytes && p.Threads <= maxTiledThreads && DefaultTile < r.V:
			p.Tile = DefaultTile
		default:
			p.Tile = 0
		}
	}

	switch {
	case p.Tile == 0:
		p.Strategy = OnDemand
	case p.Tile < r.V:
		p.Strategy = TiledCache
	default:
		p.Strategy = FullyStored
	}

	return p, nil
}

// CacheBytes returns the size of the buffer the plan reserves for cached
// elements.
func (p Plan) CacheBytes(v, elemSize int) uint64 {
	switch p.Strategy {
	case TiledCache:
		return uint64(p.Tile) * uint64(p.Tile) * uint64(elemSize)
	case FullyStored:
		return Elements(v) * uint64(elemSize)
	default:
		return 0
	}
}

func (p *Plan) warn(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}
