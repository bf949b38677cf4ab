package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvDebug enables the debug log when set to "1"
const EnvDebug = "TASKLIST_DEBUG"

// EnvDebugFile overrides the debug log location
const EnvDebugFile = "TASKLIST_DEBUG_FILE"

var (
	mu  sync.Mutex
	out io.Writer
)

func init() {
	if os.Getenv(EnvDebug) == "1" {
		path := os.Getenv(EnvDebugFile)
		if path == "" {
			path = filepath.Join(os.TempDir(), "tasklist-debug.log")
		}
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = f
		}
	}
}

// DebugEnabled returns true if debug output has a destination
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}

// SetOutput redirects debug output. A nil writer disables it.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Debugf writes a timestamped line to the debug log.
// The terminal is never used since the TUI owns it.
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return
	}
	fmt.Fprintf(out, "%s "+format+"\n", append([]interface{}{time.Now().Format(time.RFC3339)}, args...)...)
	if f, ok := out.(*os.File); ok {
		f.Sync()
	}
}
