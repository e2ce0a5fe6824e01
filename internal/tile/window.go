// Package tile manages the cache-resident window of the virtual matrix: its
// coordinate bookkeeping, the linear index of its elements, the split of a
// window among workers and the refill itself.
package tile

// Window is a region of the strict upper triangle.
//
// A rectangular window holds every (r, c) with RowStart <= r < RowEnd and
// ColStart <= c < ColEnd, where RowEnd <= ColStart. A triangular window
// holds every (r, c) with RowStart <= r < c < ColEnd; its RowEnd equals
// ColEnd.
type Window struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
	Triangle         bool
}

// Invalid is the window of an empty cache.
var Invalid = Window{RowStart: -1, RowEnd: -1, ColStart: -1, ColEnd: -1}

// Full returns the window spanning the whole upper triangle of a v×v matrix.
func Full(v int) Window {
	return Window{RowStart: 0, RowEnd: v, ColStart: 0, ColEnd: v, Triangle: true}
}

func (w Window) Valid() bool {
	return w.RowStart >= 0 && w.ColEnd > 0
}

// Contains reports whether (row, col), row < col, is resident.
func (w Window) Contains(row, col int) bool {
	if !w.Valid() || row < w.RowStart || row >= w.RowEnd || col >= w.ColEnd {
		return false
	}
	if w.Triangle {
		return col > row
	}
	return col >= w.ColStart
}

// Size returns the number of elements the window holds.
func (w Window) Size() int {
	if !w.Valid() {
		return 0
	}
	if w.Triangle {
		n := w.ColEnd - w.RowStart
		return n * (n - 1) / 2
	}
	return (w.RowEnd - w.RowStart) * (w.ColEnd - w.ColStart)
}

// Index maps a contained (row, col) onto [0, Size()). The map is a
// bijection; triangles are stored row by row.
func (w Window) Index(row, col int) int {
	if w.Triangle {
		n := w.ColEnd - w.RowStart
		i, j := row-w.RowStart, col-w.RowStart
		return i*(n+n-i-3)/2 - 1 + j
	}
	return (row-w.RowStart)*(w.ColEnd-w.ColStart) + col - w.ColStart
}

// Next returns the window to load for a miss at (row, col) given the
// current window cur, the tile edge k and the matrix order v.
//
// Columns advance in strips of k aligned at multiples of k; a miss inside
// the current strip keeps it. Rows above the strip are loaded as a
// rectangle of at most k rows that ends before the strip starts; rows
// inside the strip are loaded as the triangle down to the strip end.
// Either way the window holds at most k*k elements.
func Next(cur Window, row, col, k, v int) Window {
	w := Window{ColStart: cur.ColStart, ColEnd: cur.ColEnd}
	if !cur.Valid() || col < cur.ColStart || col >= cur.ColEnd {
		w.ColStart = col / k * k
		w.ColEnd = min(w.ColStart+k, v)
	}

	w.RowStart = row
	if row < w.ColStart {
		w.RowEnd = min(row+k, w.ColStart)
	} else {
		w.Triangle = true
		w.RowEnd = w.ColEnd
	}
	return w
}
