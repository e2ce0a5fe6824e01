//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// SetupWorkerAffinity locks the goroutine to an OS thread without pinning.
func SetupWorkerAffinity(workerID int) (func(), error) {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}, nil
}
