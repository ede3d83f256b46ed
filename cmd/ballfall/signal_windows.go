//go:build windows

package main

import "os"

// stopSignals end a run early. Windows has no SIGTERM, only Ctrl+C.
var stopSignals = []os.Signal{os.Interrupt}
