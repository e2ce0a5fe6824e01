package cpu

import (
	"runtime"

	xcpu "golang.org/x/sys/cpu"
)

// Features describes the vector capabilities the numeric kernels size their
// data blocks for.
type Features struct {
	// Width of one vector register in bytes (32 with AVX, otherwise 16).
	VectorBytes int

	// Whether 128 bit popcount processing of packed bits is available
	// (POPCNT together with SSE4.1).
	WidePopcount bool
}

// Detect probes the running CPU.
func Detect() Features {
	f := Features{VectorBytes: 16}
	if xcpu.X86.HasAVX {
		f.VectorBytes = 32
	}
	f.WidePopcount = xcpu.X86.HasPOPCNT && xcpu.X86.HasSSE41
	return f
}

// Lanes returns how many elements of the given byte size fit in one vector.
func (f Features) Lanes(elemSize int) int {
	if elemSize <= 0 || f.VectorBytes < elemSize {
		return 1
	}
	return f.VectorBytes / elemSize
}

// GetNumCPU returns the number of logical CPUs available.
func GetNumCPU() int {
	return runtime.NumCPU()
}
