package cmat

import (
	"github.com/sirupsen/logrus"

	"github.com/utkarsh5026/corrmat/internal/kernel"
	"github.com/utkarsh5026/corrmat/internal/planner"
	"github.com/utkarsh5026/corrmat/internal/tile"
)

// Float is the element type of a matrix.
type Float = kernel.Float

// Kind selects the correlation coefficient.
type Kind = kernel.Kind

const (
	// Pearson is the product-moment correlation of the raw samples.
	Pearson = kernel.Pearson

	// Tetrachoric estimates the correlation of the samples binarized at
	// their median.
	Tetrachoric = kernel.Tetrachoric
)

// Strategy is how a matrix stores its elements.
type Strategy = planner.Strategy

const (
	OnDemand    = planner.OnDemand
	TiledCache  = planner.TiledCache
	FullyStored = planner.FullyStored
)

// Split selects how a rectangular tile is divided among workers.
type Split = tile.Split

const (
	Grid    = tile.Grid
	Halving = tile.Halving
)

// Plan is the resolved configuration of a matrix.
type Plan = planner.Plan

// Auto lets the matrix choose the thread count or tile size.
const Auto = planner.Auto

// R2ZMax is the saturation value of Fisher's r-to-z transform and the
// diagonal of a transformed matrix.
const R2ZMax = kernel.R2ZMax

// Config lists every recognized option. Start from DefaultConfig.
type Config struct {
	// Correlation coefficient. Default Pearson.
	Kind Kind

	// Apply Fisher's r-to-z transform to every element.
	Transform bool

	// Worker count: Auto uses the logical CPU count, 0 means 1.
	// Valid range [1, 1024].
	Threads int

	// Tile edge: Auto, 0 for no cache, 0 < TileSize < V for a bounded tile,
	// V to store the whole triangle.
	TileSize int

	// Memory budget for cached elements in GiB. Negative selects 2 GiB.
	MaxMemoryGiB float64

	// Start and join goroutines for every refill instead of keeping a
	// persistent pool. Always the case with a single thread.
	Blocking bool

	// Division of rectangular tiles among workers. Default Grid.
	Split Split

	// Lock each persistent worker to its own OS thread pinned to one CPU.
	PinWorkers bool

	// Destination of warnings and refill debug messages. Defaults to the
	// logrus standard logger.
	Logger logrus.FieldLogger
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		Kind:         Pearson,
		Threads:      Auto,
		TileSize:     Auto,
		MaxMemoryGiB: -1,
		Split:        Grid,
		Logger:       logrus.StandardLogger(),
	}
}

// Option is a functional option for New.
type Option func(*Config)

// WithKind sets the correlation coefficient.
func WithKind(kind Kind) Option {
	return func(c *Config) {
		c.Kind = kind
	}
}

// WithTransform enables Fisher's r-to-z transform.
func WithTransform(on bool) Option {
	return func(c *Config) {
		c.Transform = on
	}
}

// WithThreads sets the worker count. Out of range values make New fail.
func WithThreads(n int) Option {
	return func(c *Config) {
		c.Threads = n
	}
}

// WithTileSize requests a tile edge. See Config.TileSize.
func WithTileSize(k int) Option {
	return func(c *Config) {
		c.TileSize = k
	}
}

// WithMaxMemoryGiB sets the memory budget.
func WithMaxMemoryGiB(gib float64) Option {
	return func(c *Config) {
		c.MaxMemoryGiB = gib
	}
}

// WithBlocking forces spawn-and-join workers.
func WithBlocking(on bool) Option {
	return func(c *Config) {
		c.Blocking = on
	}
}

// WithSplit sets how rectangular tiles are divided among workers.
func WithSplit(s Split) Option {
	return func(c *Config) {
		c.Split = s
	}
}

// WithPinnedWorkers pins persistent workers to CPUs.
func WithPinnedWorkers(on bool) Option {
	return func(c *Config) {
		c.PinWorkers = on
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}
