// Package cmat provides a virtual, symmetric V×V correlation matrix over V
// series of T samples each.
//
// The full matrix holds V(V-1)/2 distinct values and is often far larger
// than the memory available. A Matrix therefore never promises to
// materialize it: at construction it picks one of three strategies from V,
// a memory budget and the thread count, and every access goes through the
// chosen strategy.
//
//   - OnDemand computes every element when it is read.
//   - TiledCache keeps a bounded window (a tile of at most K×K elements) of
//     the upper triangle and refills it in parallel on a pool of workers
//     whenever a traversal leaves it.
//   - FullyStored precomputes the whole upper triangle once.
//
// All strategies return bit-identical values for the same input and
// precision.
//
// # Basic Usage
//
//	m, err := cmat.New[float64](data, v, t,
//	    cmat.WithKind(cmat.Pearson),
//	    cmat.WithThreads(4),
//	)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	r := m.Get(3, 7)
//
// # Traversal
//
// First and Next walk the strict upper triangle strip by strip, in step
// with the cache window, so a tiled matrix refills each window exactly once:
//
//	for st := m.First(); st != cmat.StatusDone; st = m.Next() {
//	    row, col := m.Position()
//	    if st == cmat.StatusError {
//	        log.Printf("(%d,%d): %v", row, col, m.Err())
//	        continue
//	    }
//	    use(row, col, m.Value())
//	}
//
// Walk wraps the same loop in a callback.
//
// # Memory Budget
//
// The budget (WithMaxMemoryGiB, default 2 GiB) bounds the cache or the
// stored triangle. An explicit tile size that does not fit is downgraded
// rather than rejected; the reasons are recorded in Plan().Warnings and
// logged at warn level.
//
// A Matrix is not safe for concurrent use.
package cmat
