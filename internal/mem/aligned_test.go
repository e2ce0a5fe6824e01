package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAligned(t *testing.T) {
	for _, align := range []int{8, 16, 32, 64} {
		for _, n := range []int{1, 3, 7, 100, 1023} {
			f64, err := Aligned[float64](n, align)
			require.NoError(t, err)
			assert.Len(t, f64, n)
			assert.Equal(t, n, cap(f64), "capacity must not expose padding")
			assert.True(t, IsAligned(f64, align), "float64 n=%d align=%d", n, align)

			f32, err := Aligned[float32](n, align)
			require.NoError(t, err)
			assert.Len(t, f32, n)
			assert.True(t, IsAligned(f32, align), "float32 n=%d align=%d", n, align)
			for _, v := range f32 {
				assert.Zero(t, v)
			}
		}
	}
}

func TestAligned_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		align int
	}{
		{"zero", 0},
		{"negative", -16},
		{"not power of two", 24},
		{"smaller than element", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aligned[float64](10, tt.align)
			assert.ErrorIs(t, err, ErrBadAlignment)
		})
	}
}

func TestAligned_Empty(t *testing.T) {
	s, err := Aligned[float32](0, 32)
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.True(t, IsAligned(s, 32))
}
