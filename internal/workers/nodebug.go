//go:build !debug

package workers

func debugLog(string, ...interface{}) {}
