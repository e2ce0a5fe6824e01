package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/utkarsh5026/corrmat/cmat"
)

// =============================================================================
// Strategy Comparison Benchmarks - full traversals under every strategy
// =============================================================================

// BenchmarkStrategy_Traversal_AllStrategies compares full traversals of the
// same matrix, construction excluded.
func BenchmarkStrategy_Traversal_AllStrategies(b *testing.B) {
	const v, t = 1500, 256
	threads := min(runtime.NumCPU(), 6)

	for _, sc := range getAllStrategies(threads, 256) {
		b.Run(sc.name, func(b *testing.B) {
			m := newBenchMatrix[float32](b, v, t, sc.opts...)
			defer m.Close()

			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				n := traverse(b, m)
				b.ReportMetric(float64(n), "elements/op")
			}
		})
	}
}

// BenchmarkStrategy_Lifecycle includes construction and teardown, where the
// fully stored matrix pays for its precomputation.
func BenchmarkStrategy_Lifecycle(b *testing.B) {
	const v, t = 800, 128
	threads := min(runtime.NumCPU(), 6)

	for _, sc := range getAllStrategies(threads, 128) {
		b.Run(sc.name, func(b *testing.B) {
			for range b.N {
				m := newBenchMatrix[float64](b, v, t, sc.opts...)
				traverse(b, m)
				if err := m.Close(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkStrategy_Tiled_Threads shows how refills scale with the worker
// count.
func BenchmarkStrategy_Tiled_Threads(b *testing.B) {
	const v, t = 2000, 512

	for _, threads := range []int{1, 2, 4, 8} {
		for _, blocking := range []bool{false, true} {
			name := fmt.Sprintf("threads=%d/blocking=%t", threads, blocking)
			b.Run(name, func(b *testing.B) {
				m := newBenchMatrix[float32](b, v, t,
					cmat.WithThreads(threads),
					cmat.WithTileSize(512),
					cmat.WithBlocking(blocking),
				)
				defer m.Close()

				b.ResetTimer()
				for range b.N {
					traverse(b, m)
				}
				b.StopTimer()
				st := m.Stats()
				b.ReportMetric(float64(st.Refills)/float64(b.N), "refills/op")
			})
		}
	}
}

// BenchmarkStrategy_Tiled_TileSize compares tile edges at a fixed worker
// count.
func BenchmarkStrategy_Tiled_TileSize(b *testing.B) {
	const v, t = 2000, 256
	threads := min(runtime.NumCPU(), 4)

	for _, tile := range []int{64, 256, 1024} {
		b.Run(fmt.Sprintf("tile=%d", tile), func(b *testing.B) {
			m := newBenchMatrix[float32](b, v, t, cmat.WithThreads(threads), cmat.WithTileSize(tile))
			defer m.Close()

			b.ResetTimer()
			for range b.N {
				traverse(b, m)
			}
		})
	}
}
