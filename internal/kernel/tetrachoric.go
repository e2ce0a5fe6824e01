package kernel

import (
	"math"
	"math/bits"
	"slices"
)

// binarize thresholds every row at its median and packs the result into x
// 32 bit words per row. Bits above t stay zero.
func binarize[F Float](data []F, v, t, x int) []uint32 {
	out := make([]uint32, v*x)
	buf := make([]F, t)

	for i := range v {
		row := data[i*t : i*t+t]
		copy(buf, row)
		slices.Sort(buf)

		var med F
		if t%2 == 1 {
			med = buf[t/2]
		} else {
			med = (buf[t/2-1] + buf[t/2]) / 2
		}

		words := out[i*x : i*x+x]
		for k, d := range row {
			if d > med {
				words[k>>5] |= 1 << uint(k&31)
			}
		}
	}
	return out
}

// cosineMap maps the number of agreeing samples k to the tetrachoric
// coefficient -cos(pi*k/t) of a median split.
func cosineMap[F Float](t int) []F {
	m := make([]F, t+1)
	for k := range m {
		m[k] = F(-math.Cos(math.Pi * float64(k) / float64(t)))
	}
	return m
}

func (s *Set[F]) tetrachoric(i, j int) F {
	a := s.bits[i*s.x : i*s.x+s.x]
	b := s.bits[j*s.x : j*s.x+s.x]

	diff := 0
	for k := range a {
		diff += bits.OnesCount32(a[k] ^ b[k])
	}
	return s.cmap[s.t-diff]
}
