package benchmarks

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/utkarsh5026/corrmat/cmat"
	"github.com/utkarsh5026/corrmat/internal/dataset"
)

// strategyConfig defines a benchmark configuration for one storage strategy
type strategyConfig struct {
	name string
	opts []cmat.Option
}

// getAllStrategies returns every strategy with comparable settings. tile is
// the edge used by the tiled variants.
func getAllStrategies(threads, tile int) []strategyConfig {
	return []strategyConfig{
		{
			name: "OnDemand",
			opts: []cmat.Option{cmat.WithThreads(threads), cmat.WithTileSize(0)},
		},
		{
			name: "Tiled_Persistent",
			opts: []cmat.Option{cmat.WithThreads(threads), cmat.WithTileSize(tile)},
		},
		{
			name: "Tiled_Blocking",
			opts: []cmat.Option{cmat.WithThreads(threads), cmat.WithTileSize(tile), cmat.WithBlocking(true)},
		},
		{
			name: "Tiled_Halving",
			opts: []cmat.Option{cmat.WithThreads(threads), cmat.WithTileSize(tile), cmat.WithSplit(cmat.Halving)},
		},
		{
			name: "FullyStored",
			opts: []cmat.Option{cmat.WithThreads(threads), cmat.WithTileSize(cmat.Auto), cmat.WithMaxMemoryGiB(-1)},
		},
	}
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

// newBenchMatrix builds a matrix over synthetic data, failing the benchmark
// on error.
func newBenchMatrix[F cmat.Float](b *testing.B, v, t int, opts ...cmat.Option) *cmat.Matrix[F] {
	b.Helper()
	tab := dataset.Synthetic(v, t, 0.2, 42)
	opts = append([]cmat.Option{cmat.WithLogger(quietLogger())}, opts...)

	m, err := cmat.New(dataset.Samples[F](tab), v, t, opts...)
	if err != nil {
		b.Fatalf("create matrix: %v", err)
	}
	return m
}

// traverse walks the whole upper triangle and returns the element count.
func traverse[F cmat.Float](b *testing.B, m *cmat.Matrix[F]) int {
	n := 0
	for st := m.First(); st != cmat.StatusDone; st = m.Next() {
		if st == cmat.StatusError {
			b.Fatalf("traversal error: %v", m.Err())
		}
		n++
	}
	return n
}

var sink float64
