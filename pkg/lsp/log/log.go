// Package log provides centralized logging for the LSP server.
package log

import (
	"fmt"
	"os"
	"sync"
)

var (
	file *os.File
	mu   sync.Mutex
)

// SetOutput sets the log output file. Pass nil to disable logging.
func SetOutput(f *os.File) {
	mu.Lock()
	defer mu.Unlock()
	file = f
}

// Debug writes a debug log message if logging is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		fmt.Fprintf(file, format+"\n", args...)
	}
}

// Server writes a server-prefixed log message.
func Server(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		fmt.Fprintf(file, "[server] "+format+"\n", args...)
	}
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return file != nil
}
