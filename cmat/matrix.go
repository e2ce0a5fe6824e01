package cmat

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/utkarsh5026/corrmat/internal/cpu"
	"github.com/utkarsh5026/corrmat/internal/kernel"
	"github.com/utkarsh5026/corrmat/internal/planner"
	"github.com/utkarsh5026/corrmat/internal/tile"
	"github.com/utkarsh5026/corrmat/internal/workers"
)

// Matrix is a virtual symmetric correlation matrix. Create it with New or
// NewWithConfig and release it with Close.
type Matrix[F kernel.Float] struct {
	v, t int
	conf Config
	plan planner.Plan
	x    int
	diag F

	acc accessor[F]
	cur cursor[F]
	log logrus.FieldLogger

	// refill counters frozen by Close
	fills    int
	fillTime time.Duration
}

// New creates a matrix over data, v rows of t samples in row-major order,
// with DefaultConfig modified by opts.
func New[F kernel.Float](data []F, v, t int, opts ...Option) (*Matrix[F], error) {
	conf := DefaultConfig()
	for _, opt := range opts {
		opt(&conf)
	}
	return NewWithConfig(data, v, t, conf)
}

// NewWithConfig creates a matrix over data, v rows of t samples in
// row-major order. data is only read during construction.
func NewWithConfig[F kernel.Float](data []F, v, t int, conf Config) (*Matrix[F], error) {
	if v < 2 || t < 2 {
		return nil, fmt.Errorf("%w: V=%d T=%d, both must be > 1", ErrInvalidDimensions, v, t)
	}
	if len(data) < v*t {
		return nil, fmt.Errorf("%w: %d samples for V=%d T=%d", ErrInvalidDimensions, len(data), v, t)
	}
	if conf.Kind != Pearson && conf.Kind != Tetrachoric {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, conf.Kind)
	}
	if conf.Split != Grid && conf.Split != Halving {
		return nil, fmt.Errorf("%w: split %d", ErrInvalidConfig, int(conf.Split))
	}
	if conf.Logger == nil {
		conf.Logger = logrus.StandardLogger()
	}

	plan, err := planner.Resolve(planner.Request{
		V:            v,
		T:            t,
		Threads:      conf.Threads,
		Tile:         conf.TileSize,
		MaxMemoryGiB: conf.MaxMemoryGiB,
		ElemSize:     kernel.SizeOf[F](),
		NumCPU:       cpu.GetNumCPU(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	m := &Matrix[F]{
		v:    v,
		t:    t,
		conf: conf,
		plan: plan,
		log:  conf.Logger.WithField("component", "cmat"),
	}
	for _, w := range plan.Warnings {
		m.log.WithFields(logrus.Fields{
			"v":       v,
			"tile":    plan.Tile,
			"threads": plan.Threads,
			"budget":  plan.BudgetBytes,
		}).Warn(w)
	}

	set, err := kernel.Prepare(data, v, t, conf.Kind, conf.Transform, cpu.Detect())
	if err != nil {
		return nil, fmt.Errorf("prepare %s data: %w", conf.Kind, err)
	}
	m.x = set.BlockWidth()
	m.diag = set.Diagonal()

	m.acc, err = m.newAccessor(set)
	if err != nil {
		return nil, err
	}

	m.log.WithFields(logrus.Fields{
		"v":        v,
		"t":        t,
		"kind":     conf.Kind,
		"strategy": plan.Strategy,
		"tile":     plan.Tile,
		"threads":  plan.Threads,
	}).Debug("matrix created")
	return m, nil
}

func (m *Matrix[F]) newAccessor(set *kernel.Set[F]) (accessor[F], error) {
	base := onDemand[F]{set: set, v: m.v}

	switch m.plan.Strategy {
	case FullyStored:
		tri := tile.Precompute[F](m.v, m.plan.Threads, set.Pair)
		return &fullStore[F]{tri: tri, w: tile.Full(m.v), v: m.v}, nil

	case TiledCache:
		wc := workers.Config{
			Workers:  m.plan.Threads,
			Blocking: m.conf.Blocking,
		}
		if m.conf.PinWorkers {
			wc.Setup = cpu.SetupWorkerAffinity
		}
		disp, err := workers.New(wc)
		if err != nil {
			return nil, err
		}

		cache, err := tile.NewCache[F](m.v, m.plan.Tile, set.Pair, disp, m.conf.Split, m.refillLogger())
		if err != nil {
			_ = disp.Close()
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return &tiled[F]{onDemand: base, k: m.plan.Tile, cache: cache, disp: disp}, nil

	default:
		return &base, nil
	}
}

// refillLogger returns the refill callback of the tile cache. Traversals
// refill thousands of times, so only a sample is logged.
func (m *Matrix[F]) refillLogger() func(tile.FillEvent) {
	sometimes := &rate.Sometimes{First: 3, Interval: time.Second}
	return func(e tile.FillEvent) {
		sometimes.Do(func() {
			m.log.WithFields(logrus.Fields{
				"rows":     fmt.Sprintf("[%d,%d)", e.Window.RowStart, e.Window.RowEnd),
				"cols":     fmt.Sprintf("[%d,%d)", e.Window.ColStart, e.Window.ColEnd),
				"elements": e.Elements,
				"duration": e.Duration,
			}).Debug("tile refilled")
		})
	}
}

// Close stops the workers and releases all buffers. Calling it again is a
// no-op.
func (m *Matrix[F]) Close() error {
	if m.acc == nil {
		return nil
	}
	m.fills, m.fillTime = m.acc.stats()
	err := m.acc.close()
	m.acc = nil
	m.cur = cursor[F]{row: m.cur.row, col: m.cur.col, state: iterDone}
	return err
}

// V returns the number of rows and columns.
func (m *Matrix[F]) V() int { return m.v }

// T returns the number of samples per row.
func (m *Matrix[F]) T() int { return m.t }

// Kind returns the correlation coefficient.
func (m *Matrix[F]) Kind() Kind { return m.conf.Kind }

// Strategy returns the storage strategy chosen at construction.
func (m *Matrix[F]) Strategy() Strategy { return m.plan.Strategy }

// Plan returns the resolved configuration including any warnings.
func (m *Matrix[F]) Plan() Plan { return m.plan }

// BlockWidth returns the padded row length of the prepared data.
func (m *Matrix[F]) BlockWidth() int { return m.x }

// Diagonal returns the value of every (i, i) element.
func (m *Matrix[F]) Diagonal() F { return m.diag }

// Get returns element (i, j). The matrix is symmetric; the diagonal is
// returned without computation. Get panics if an index is out of range or
// the matrix is closed. Failed computations yield NaN.
func (m *Matrix[F]) Get(i, j int) F {
	if i < 0 || j < 0 || i >= m.v || j >= m.v {
		panic(fmt.Sprintf("cmat: index (%d,%d) out of range [0,%d)", i, j, m.v))
	}
	if m.acc == nil {
		panic("cmat: Get on closed Matrix")
	}
	if i == j {
		return m.diag
	}
	if i > j {
		i, j = j, i
	}
	return m.acc.get(i, j)
}

// Lookup is Get with errors instead of panics and NaN.
func (m *Matrix[F]) Lookup(i, j int) (F, error) {
	nan := F(math.NaN())
	if i < 0 || j < 0 || i >= m.v || j >= m.v {
		return nan, fmt.Errorf("%w: (%d,%d) with V=%d", ErrOutOfRange, i, j, m.v)
	}
	if m.acc == nil {
		return nan, ErrClosed
	}

	v := m.Get(i, j)
	if math.IsNaN(float64(v)) {
		return v, fmt.Errorf("%w: element (%d,%d) is NaN", ErrNumeric, i, j)
	}
	return v, nil
}

// Stats is the plan and the cache activity of a matrix.
type Stats struct {
	Strategy    Strategy
	Threads     int
	Tile        int
	BudgetBytes uint64
	CacheBytes  uint64

	// Number of tile refills and their accumulated wall time.
	Refills  int
	FillTime time.Duration
}

// Stats reports the plan and the refills so far. It stays valid after Close.
func (m *Matrix[F]) Stats() Stats {
	fills, total := m.fills, m.fillTime
	if m.acc != nil {
		fills, total = m.acc.stats()
	}
	return Stats{
		Strategy:    m.plan.Strategy,
		Threads:     m.plan.Threads,
		Tile:        m.plan.Tile,
		BudgetBytes: m.plan.BudgetBytes,
		CacheBytes:  m.plan.CacheBytes(m.v, kernel.SizeOf[F]()),
		Refills:     fills,
		FillTime:    total,
	}
}
