package tile

import "math"

// Split selects how a rectangular window is divided among workers.
type Split int

const (
	// Grid cuts the rectangle into gr×gc sub-rectangles with gr*gc equal to
	// the worker count and gc the largest divisor not above its square root.
	Grid Split = iota

	// Halving cuts the longer side in proportion to the worker counts of
	// the two halves, recursively.
	Halving
)

func (s Split) String() string {
	if s == Halving {
		return "halving"
	}
	return "grid"
}

// Block is the part of a window one worker fills. With Upper set only
// elements with c > r belong to it.
type Block struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
	Upper            bool
}

// Each calls fn for every element of the block, row by row.
func (b Block) Each(fn func(row, col int)) {
	for r := b.RowStart; r < b.RowEnd; r++ {
		c := b.ColStart
		if b.Upper {
			c = max(c, r+1)
		}
		for ; c < b.ColEnd; c++ {
			fn(r, c)
		}
	}
}

// Len returns the number of elements in the block.
func (b Block) Len() int {
	n := 0
	for r := b.RowStart; r < b.RowEnd; r++ {
		c := b.ColStart
		if b.Upper {
			c = max(c, r+1)
		}
		n += max(b.ColEnd-c, 0)
	}
	return n
}

// Partition divides w into exactly n blocks, one per worker; blocks may be
// empty when the window is smaller than n. Triangles are always halved by
// area since a grid over a triangle leaves half the workers idle.
func Partition(w Window, n int, split Split) []Block {
	n = max(n, 1)
	blocks := make([]Block, 0, n)

	if w.Triangle {
		return halveTriangle(blocks, w.RowStart, w.ColEnd, w.ColEnd, n)
	}

	root := Block{RowStart: w.RowStart, RowEnd: w.RowEnd, ColStart: w.ColStart, ColEnd: w.ColEnd}
	if split == Halving {
		return halveRect(blocks, root, n)
	}
	return gridRect(blocks, root, n)
}

// GridShape returns the row and column counts of the worker grid: gc is
// the largest divisor of n not above sqrt(n), gr = n/gc.
func GridShape(n int) (gr, gc int) {
	g := int(math.Floor(math.Sqrt(float64(n))))
	for ; g > 1; g-- {
		if n%g == 0 {
			break
		}
	}
	g = max(g, 1)
	return n / g, g
}

func gridRect(blocks []Block, b Block, n int) []Block {
	gr, gc := GridShape(n)
	rows, cols := b.RowEnd-b.RowStart, b.ColEnd-b.ColStart

	for i := range gr {
		r0 := b.RowStart + rows*i/gr
		r1 := b.RowStart + rows*(i+1)/gr
		for j := range gc {
			blocks = append(blocks, Block{
				RowStart: r0,
				RowEnd:   r1,
				ColStart: b.ColStart + cols*j/gc,
				ColEnd:   b.ColStart + cols*(j+1)/gc,
			})
		}
	}
	return blocks
}

func halveRect(blocks []Block, b Block, n int) []Block {
	if n == 1 {
		return append(blocks, b)
	}

	n1 := n / 2
	lo, hi := b, b
	if rows, cols := b.RowEnd-b.RowStart, b.ColEnd-b.ColStart; rows >= cols {
		m := b.RowStart + rows*n1/n
		lo.RowEnd, hi.RowStart = m, m
	} else {
		m := b.ColStart + cols*n1/n
		lo.ColEnd, hi.ColStart = m, m
	}

	blocks = halveRect(blocks, lo, n1)
	return halveRect(blocks, hi, n-n1)
}

// halveTriangle splits the upper rows [a, e) of a triangle ending at column
// end into n row bands of about equal element count.
func halveTriangle(blocks []Block, a, e, end, n int) []Block {
	if n == 1 {
		return append(blocks, Block{RowStart: a, RowEnd: e, ColStart: a, ColEnd: end, Upper: true})
	}

	n1 := n / 2
	total := triangleArea(a, e, end)
	target := total * n1 / n

	m, area := a, 0
	for m < e && area+max(end-1-m, 0) <= target {
		area += max(end-1-m, 0)
		m++
	}

	blocks = halveTriangle(blocks, a, m, end, n1)
	return halveTriangle(blocks, m, e, end, n-n1)
}

func triangleArea(a, e, end int) int {
	area := 0
	for r := a; r < e; r++ {
		area += max(end-1-r, 0)
	}
	return area
}
