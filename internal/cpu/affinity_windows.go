//go:build windows

package cpu

import (
	"fmt"
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
// Returns the previous affinity mask on success.
func pinToCore(cpuID int) (uintptr, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = cpuID % numCPU
		if cpuID < 0 {
			cpuID += numCPU
		}
	}

	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N
	mask := uintptr(1 << cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return 0, fmt.Errorf("pin worker to cpu %d: %w", cpuID, err)
	}

	return prevMask, nil
}

// SetupWorkerAffinity locks the calling goroutine to an OS thread and pins
// it to the core matching workerID.
func SetupWorkerAffinity(workerID int) (func(), error) {
	runtime.LockOSThread()
	if _, err := pinToCore(workerID); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	return func() {
		runtime.UnlockOSThread()
	}, nil
}
