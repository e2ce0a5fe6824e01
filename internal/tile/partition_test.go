package tile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridShape(t *testing.T) {
	tests := []struct {
		n, gr, gc int
	}{
		{1, 1, 1},
		{2, 2, 1},
		{4, 2, 2},
		{6, 3, 2},
		{7, 7, 1},
		{12, 4, 3},
		{16, 4, 4},
	}
	for _, tt := range tests {
		gr, gc := GridShape(tt.n)
		assert.Equal(t, tt.gr, gr, "n=%d", tt.n)
		assert.Equal(t, tt.gc, gc, "n=%d", tt.n)
	}
}

func TestPartition_CoversWindowExactlyOnce(t *testing.T) {
	windows := []Window{
		Full(11),
		{RowStart: 0, RowEnd: 4, ColStart: 4, ColEnd: 8},
		{RowStart: 5, RowEnd: 6, ColStart: 8, ColEnd: 11},
		{RowStart: 8, RowEnd: 11, ColStart: 8, ColEnd: 11, Triangle: true},
		{RowStart: 9, RowEnd: 10, ColStart: 9, ColEnd: 10, Triangle: true},
	}

	for _, w := range windows {
		for _, split := range []Split{Grid, Halving} {
			for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 16} {
				t.Run(fmt.Sprintf("%+v/%s/%d", w, split, n), func(t *testing.T) {
					blocks := Partition(w, n, split)
					require.Len(t, blocks, n)

					seen := make(map[[2]int]int)
					total := 0
					for _, b := range blocks {
						b.Each(func(r, c int) {
							require.True(t, w.Contains(r, c), "(%d,%d) outside window", r, c)
							seen[[2]int{r, c}]++
						})
						total += b.Len()
					}

					assert.Equal(t, w.Size(), total)
					assert.Len(t, seen, w.Size())
					for p, cnt := range seen {
						assert.Equal(t, 1, cnt, "element %v", p)
					}
				})
			}
		}
	}
}

func TestPartition_TriangleBandsAreBalanced(t *testing.T) {
	w := Full(1000)
	blocks := Partition(w, 4, Grid)
	require.Len(t, blocks, 4)

	want := w.Size() / 4
	for i, b := range blocks {
		assert.InEpsilon(t, want, b.Len(), 0.01, "band %d", i)
	}
}

func TestPartition_NonPositiveWorkersYieldsOneBlock(t *testing.T) {
	blocks := Partition(Full(5), 0, Halving)
	require.Len(t, blocks, 1)
	assert.Equal(t, 10, blocks[0].Len())
}
