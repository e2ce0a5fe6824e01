package workers

import (
	"fmt"
	"runtime"
)

// runJob executes job with panic recovery. A panic is converted to an error
// carrying the stack trace so a failing kernel cannot take the pool down.
func runJob(job Job, worker int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("worker %d panic: %v\nstack trace:\n%s", worker, r, buf[:n])
		}
	}()

	return job(worker)
}
