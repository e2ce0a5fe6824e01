// Package mem provides the aligned buffer allocation used for vector sized
// data blocks.
package mem

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrBadAlignment is returned for alignments that are not a positive power
// of two or are smaller than the element size.
var ErrBadAlignment = errors.New("alignment must be a power of two not smaller than the element size")

// Aligned returns a zeroed slice of n elements whose first element starts on
// an address that is a multiple of align bytes. The backing array is
// over-allocated by at most align bytes and stays reachable through the
// returned slice, so the garbage collector keeps it alive.
func Aligned[E any](n, align int) ([]E, error) {
	var zero E
	size := int(unsafe.Sizeof(zero))
	if align <= 0 || align&(align-1) != 0 || align < size || size == 0 {
		return nil, fmt.Errorf("%w: align=%d element=%d", ErrBadAlignment, align, size)
	}
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	if n == 0 {
		return []E{}, nil
	}

	pad := align / size
	buf := make([]E, n+pad)
	off := 0
	if rem := uintptr(unsafe.Pointer(&buf[0])) % uintptr(align); rem != 0 {
		off = int((uintptr(align) - rem) / uintptr(size))
	}
	return buf[off : off+n : off+n], nil
}

// IsAligned reports whether the first element of s sits on an align byte
// boundary. Empty slices are considered aligned.
func IsAligned[E any](s []E, align int) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%uintptr(align) == 0
}
