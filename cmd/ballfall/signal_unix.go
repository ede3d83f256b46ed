//go:build !windows

package main

import (
	"os"
	"syscall"
)

// stopSignals end a run early. The artifacts are still written.
var stopSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
