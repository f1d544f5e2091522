package main

import (
	"fmt"
	"os"
)

// Version is set via ldflags at build time.
var Version = "0.1.0"

func main() {
	if err := newRootCmd(runEditor).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "quake: %v\n", err)
		os.Exit(1)
	}
}
