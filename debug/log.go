package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out      io.Writer
	file     *os.File
	mu       sync.Mutex
	counters = make(map[string]int)
)

// DefaultPath is ~/.config/go-euclid/debug.log
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "go-euclid", "debug.log")
}

// Enable starts logging to path, truncating it. An empty path means DefaultPath.
func Enable(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	closeFile()
	file = f
	out = f
	mu.Unlock()

	Log("debug", "=== Debug logging started ===")
	return nil
}

// SetOutput sends log lines to w. nil disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	out = w
}

// Disable stops debug logging
func Disable() {
	SetOutput(nil)
}

// caller holds mu
func closeFile() {
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes one line tagged with category.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		return
	}

	ts := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[%s] %-10s %s\n", ts, category, msg)
	if file != nil {
		file.Sync() // survive a crash
	}
}

// LogEvery logs only every n-th call with the same category and format.
// Used on the tick path.
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n <= 1 || count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
