// Package debug provides the process-wide debug logger used by every pipeline
// stage. Output is disabled unless SetDebug(true) is called, and always goes
// to stderr (or the writer installed with SetOutput) so it never mixes with
// generated output.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// emit writes a single line with the [DEBUG] prefix and a timestamp.
// label is highlighted when color is on; body is written verbatim.
func emit(label, labelColor, body string) {
	mu.RLock()
	on, useColor, w := enabled, !noColor, out
	mu.RUnlock()
	if !on {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	if useColor {
		if label != "" {
			label = labelColor + label + colorReset
		}
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s%s\n",
			colorCyan, colorReset, colorGray, timestamp, colorReset, label, body)
		return
	}
	fmt.Fprintf(w, "[DEBUG] %s %s%s\n", timestamp, label, body)
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	emit("", "", fmt.Sprintf(format, args...))
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	emit("=== "+section+" ===", colorCyan, "")
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	emit(key, colorCyan, fmt.Sprintf(" = %v", value))
}

// DebugDuration prints how long a stage took since start.
func DebugDuration(stage string, start time.Time) {
	if !IsEnabled() {
		return
	}
	emit(stage, colorYellow, fmt.Sprintf(" took %s", time.Since(start).Round(time.Microsecond)))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(key, colorCyan, ":\n"+string(jsonBytes))
}
