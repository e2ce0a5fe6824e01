package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow_IndexIsBijection(t *testing.T) {
	windows := []Window{
		Full(7),
		{RowStart: 2, RowEnd: 9, ColStart: 6, ColEnd: 9, Triangle: true},
		{RowStart: 0, RowEnd: 3, ColStart: 3, ColEnd: 6},
		{RowStart: 4, RowEnd: 5, ColStart: 8, ColEnd: 10},
	}

	for _, w := range windows {
		seen := make([]bool, w.Size())
		n := 0
		for r := w.RowStart; r < w.RowEnd; r++ {
			for c := r + 1; c < w.ColEnd; c++ {
				if !w.Contains(r, c) {
					continue
				}
				idx := w.Index(r, c)
				require.GreaterOrEqual(t, idx, 0, "window %+v (%d,%d)", w, r, c)
				require.Less(t, idx, w.Size(), "window %+v (%d,%d)", w, r, c)
				require.False(t, seen[idx], "window %+v index %d reused", w, idx)
				seen[idx] = true
				n++
			}
		}
		assert.Equal(t, w.Size(), n, "window %+v", w)
	}
}

func TestWindow_TriangleIndexMatchesRowMajorOrder(t *testing.T) {
	w := Full(5)
	want := 0
	for r := 0; r < 5; r++ {
		for c := r + 1; c < 5; c++ {
			assert.Equal(t, want, w.Index(r, c), "(%d,%d)", r, c)
			want++
		}
	}
}

func TestWindow_Contains(t *testing.T) {
	assert.False(t, Invalid.Valid())
	assert.False(t, Invalid.Contains(0, 1))
	assert.Zero(t, Invalid.Size())

	rect := Window{RowStart: 0, RowEnd: 3, ColStart: 3, ColEnd: 6}
	assert.True(t, rect.Contains(0, 3))
	assert.True(t, rect.Contains(2, 5))
	assert.False(t, rect.Contains(3, 4))
	assert.False(t, rect.Contains(0, 2))
	assert.False(t, rect.Contains(0, 6))

	tri := Window{RowStart: 3, RowEnd: 6, ColStart: 3, ColEnd: 6, Triangle: true}
	assert.True(t, tri.Contains(3, 4))
	assert.True(t, tri.Contains(4, 5))
	assert.False(t, tri.Contains(2, 4))
	assert.False(t, tri.Contains(4, 4))
	assert.Equal(t, 3, tri.Size())
}

func TestNext(t *testing.T) {
	const k, v = 3, 10

	tests := []struct {
		name     string
		cur      Window
		row, col int
		want     Window
	}{
		{
			name: "empty cache, first element",
			cur:  Invalid, row: 0, col: 1,
			want: Window{RowStart: 0, RowEnd: 3, ColStart: 0, ColEnd: 3, Triangle: true},
		},
		{
			name: "new strip above its start is a rectangle",
			cur:  Window{RowStart: 0, RowEnd: 3, ColStart: 0, ColEnd: 3, Triangle: true}, row: 0, col: 3,
			want: Window{RowStart: 0, RowEnd: 3, ColStart: 3, ColEnd: 6},
		},
		{
			name: "same strip keeps columns",
			cur:  Window{RowStart: 0, RowEnd: 3, ColStart: 3, ColEnd: 6}, row: 3, col: 4,
			want: Window{RowStart: 3, RowEnd: 6, ColStart: 3, ColEnd: 6, Triangle: true},
		},
		{
			name: "rectangle stops before the strip",
			cur:  Window{RowStart: 0, RowEnd: 3, ColStart: 6, ColEnd: 9}, row: 4, col: 6,
			want: Window{RowStart: 4, RowEnd: 6, ColStart: 6, ColEnd: 9},
		},
		{
			name: "last strip is clipped to v",
			cur:  Window{RowStart: 6, RowEnd: 9, ColStart: 6, ColEnd: 9, Triangle: true}, row: 0, col: 9,
			want: Window{RowStart: 0, RowEnd: 3, ColStart: 9, ColEnd: 10},
		},
		{
			name: "row inside the strip loads the triangle below it",
			cur:  Window{RowStart: 0, RowEnd: 3, ColStart: 6, ColEnd: 9}, row: 7, col: 8,
			want: Window{RowStart: 7, RowEnd: 9, ColStart: 6, ColEnd: 9, Triangle: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.cur, tt.row, tt.col, k, v)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Size(), k*k)
		})
	}
}

func TestNext_ColumnTraversalCoversUpperTriangle(t *testing.T) {
	for _, tc := range []struct{ k, v int }{{3, 10}, {4, 8}, {5, 7}, {2, 9}} {
		visited := make(map[[2]int]int)
		w := Invalid
		for cs := 0; cs < tc.v; cs += tc.k {
			ce := min(cs+tc.k, tc.v)
			for r := 0; r < ce-1; r++ {
				for c := max(cs, r+1); c < ce; c++ {
					if !w.Contains(r, c) {
						w = Next(w, r, c, tc.k, tc.v)
						require.True(t, w.Contains(r, c), "k=%d v=%d (%d,%d) not in %+v", tc.k, tc.v, r, c, w)
						require.LessOrEqual(t, w.Size(), tc.k*tc.k)
					}
					visited[[2]int{r, c}]++
				}
			}
		}
		assert.Len(t, visited, tc.v*(tc.v-1)/2, "k=%d v=%d", tc.k, tc.v)
	}
}
