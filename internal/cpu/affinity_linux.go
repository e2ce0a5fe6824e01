//go:build linux

package cpu

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// cpuID is reduced modulo runtime.NumCPU().
func pinToCore(cpuID int) (int, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = cpuID % numCPU
		if cpuID < 0 {
			cpuID += numCPU
		}
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, fmt.Errorf("pin worker to cpu %d: %w", cpuID, err)
	}

	return cpuID, nil
}

// SetupWorkerAffinity locks the calling goroutine to an OS thread and pins
// that thread to the core matching workerID. The returned release function
// unlocks the thread again and must be deferred by the worker.
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
