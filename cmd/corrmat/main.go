// Command corrmat builds a virtual correlation matrix over a sample table
// and plans, walks, prints or queries it.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
