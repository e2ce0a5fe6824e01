package tile

import (
	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/corrmat/internal/kernel"
)

// Precompute computes the whole strict upper triangle of a v×v matrix on
// up to threads goroutines. The result is laid out by Full(v).Index.
func Precompute[F kernel.Float](v, threads int, pair PairFunc[F]) []F {
	w := Full(v)
	out := make([]F, w.Size())

	var g errgroup.Group
	for _, b := range Partition(w, threads, Halving) {
		if b.Len() == 0 {
			continue
		}
		g.Go(func() error {
			b.Each(func(r, c int) {
				out[w.Index(r, c)] = pair(r, c)
			})
			return nil
		})
	}
	_ = g.Wait()
	return out
}
