// Command wavtool generates, inspects and compares the WAV files used to
// check the effect binaries.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
