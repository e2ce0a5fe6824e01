//go:build debug

package workers

import (
	"fmt"
	"log"
	"os"
)

var debugLogger = log.New(os.Stderr, "[WORKERS DEBUG] ", log.Ltime|log.Lmicroseconds|log.Lshortfile)

// debugLog logs debug messages when built with -tags debug
func debugLog(format string, args ...interface{}) {
	_ = debugLogger.Output(2, fmt.Sprintf(format, args...))
}
