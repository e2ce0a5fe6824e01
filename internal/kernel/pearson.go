package kernel

import (
	"math"

	"github.com/utkarsh5026/corrmat/internal/mem"
)

// normalize centers every row and scales it to unit length, so the
// correlation of two rows is their dot product. Rows with zero variance
// become NaN. Padding up to x stays zero.
func normalize[F Float](data []F, v, t, x, align int) ([]F, error) {
	out, err := mem.Aligned[F](v*x, align)
	if err != nil {
		return nil, err
	}

	for i := range v {
		row := data[i*t : i*t+t]
		dst := out[i*x : i*x+t]

		var mean float64
		for _, d := range row {
			mean += float64(d)
		}
		mean /= float64(t)

		var ss float64
		for _, d := range row {
			dev := float64(d) - mean
			ss += dev * dev
		}

		if ss == 0 || math.IsNaN(ss) {
			nan := F(math.NaN())
			for k := range dst {
				dst[k] = nan
			}
			continue
		}

		scale := 1 / math.Sqrt(ss)
		for k, d := range row {
			dst[k] = F((float64(d) - mean) * scale)
		}
	}
	return out, nil
}

// pearson is the dot product of two normalized rows, summed in four
// interleaved lanes.
func (s *Set[F]) pearson(i, j int) F {
	a := s.norm[i*s.x : i*s.x+s.x]
	b := s.norm[j*s.x : j*s.x+s.x]

	var s0, s1, s2, s3 F
	k := 0
	for ; k+4 <= len(a); k += 4 {
		s0 += a[k] * b[k]
		s1 += a[k+1] * b[k+1]
		s2 += a[k+2] * b[k+2]
		s3 += a[k+3] * b[k+3]
	}
	for ; k < len(a); k++ {
		s0 += a[k] * b[k]
	}

	r := (s0 + s1) + (s2 + s3)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
