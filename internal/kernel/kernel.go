// Package kernel computes single correlation values between the rows of a
// V×T sample table. Prepare converts the raw samples once into the form the
// pair kernels work on: mean-free unit-length rows for Pearson's
// coefficient, median-binarized packed bits plus a cosine lookup map for
// the tetrachoric coefficient.
//
// Pair is deterministic and only reads the prepared data, so it may be
// called concurrently as long as callers write to disjoint outputs.
package kernel

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/utkarsh5026/corrmat/internal/cpu"
)

// Float is the element type of a matrix.
type Float interface {
	~float32 | ~float64
}

// Kind selects the correlation coefficient.
type Kind int

const (
	Pearson Kind = iota + 1
	Tetrachoric
)

func (k Kind) String() string {
	switch k {
	case Pearson:
		return "pearson"
	case Tetrachoric:
		return "tetrachoric"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// R2ZMax is the saturation value of Fisher's r-to-z transform, returned for
// |r| = 1 and used as the diagonal of transformed matrices.
const R2ZMax = 18.3684002848

var (
	ErrUnknownKind = errors.New("unknown correlation kind")
	ErrShortData   = errors.New("sample data shorter than V*T")
)

// SizeOf returns the size in bytes of one F.
func SizeOf[F Float]() int {
	var f F
	return int(unsafe.Sizeof(f))
}

// BlockWidth returns the padded row length the prepared data uses: samples
// per row for Pearson, 32 bit words per row for Tetrachoric.
func BlockWidth(kind Kind, t, elemSize int, feat cpu.Features) int {
	switch kind {
	case Pearson:
		lanes := feat.Lanes(elemSize)
		return (t + lanes - 1) / lanes * lanes
	case Tetrachoric:
		if feat.WidePopcount {
			return 4 * ((t + 127) >> 7)
		}
		return (t + 31) >> 5
	default:
		return t
	}
}

// Set is the prepared data of one matrix.
type Set[F Float] struct {
	kind      Kind
	transform bool
	v, t, x   int

	norm []F      // Pearson: v rows of x values, vector aligned
	bits []uint32 // Tetrachoric: v rows of x words
	cmap []F      // Tetrachoric: t+1 entries, indexed by agreement count
}

// Prepare builds the kernel data for v rows of t samples stored row-major
// in data.
func Prepare[F Float](data []F, v, t int, kind Kind, transform bool, feat cpu.Features) (*Set[F], error) {
	if len(data) < v*t {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrShortData, len(data), v*t)
	}

	s := &Set[F]{
		kind:      kind,
		transform: transform,
		v:         v,
		t:         t,
		x:         BlockWidth(kind, t, SizeOf[F](), feat),
	}

	var err error
	switch kind {
	case Pearson:
		s.norm, err = normalize(data, v, t, s.x, feat.VectorBytes)
	case Tetrachoric:
		s.bits = binarize(data, v, t, s.x)
		s.cmap = cosineMap[F](t)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set[F]) Kind() Kind        { return s.kind }
func (s *Set[F]) Transformed() bool { return s.transform }
func (s *Set[F]) BlockWidth() int   { return s.x }

// Diagonal returns the value of every (i, i) element.
func (s *Set[F]) Diagonal() F {
	if s.transform {
		return F(R2ZMax)
	}
	return 1
}

// Pair returns the coefficient of rows i and j, Fisher-transformed when the
// set was prepared with transform. i and j must differ.
func (s *Set[F]) Pair(i, j int) F {
	var r F
	if s.kind == Pearson {
		r = s.pearson(i, j)
	} else {
		r = s.tetrachoric(i, j)
	}
	if s.transform {
		return R2Z(r)
	}
	return r
}

// R2Z applies Fisher's r-to-z transform, saturating at ±R2ZMax.
func R2Z[F Float](r F) F {
	z := math.Atanh(float64(r))
	if z > R2ZMax {
		z = R2ZMax
	} else if z < -R2ZMax {
		z = -R2ZMax
	}
	return F(z)
}
