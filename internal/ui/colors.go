// Package ui styles terminal output. Styling honours NO_COLOR and TERM=dumb
// and can be switched off with SetEnabled.
package ui

import (
	"os"
	"strings"
	"sync/atomic"
)

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

var enabled atomic.Bool

func init() {
	enabled.Store(colorFromEnv(os.Getenv))
}

// colorFromEnv reads the conventional opt-outs through getenv. Any non-empty
// NO_COLOR disables styling.
func colorFromEnv(getenv func(string) string) bool {
	return getenv("NO_COLOR") == "" && getenv("TERM") != "dumb"
}

// SetEnabled turns styling on or off for the whole process
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether styles are currently emitted
func Enabled() bool {
	return enabled.Load()
}

// Paint wraps s in styles. With styling off, or no styles, s is returned as is.
func Paint(s string, styles ...string) string {
	if len(styles) == 0 || !enabled.Load() {
		return s
	}
	return strings.Join(styles, "") + s + ColorReset
}

func Bold(s string) string {
	return Paint(s, ColorBold)
}

func Success(s string) string {
	return Paint(s, ColorGreen)
}

func Info(s string) string {
	return Paint(s, ColorDim, ColorYellow)
}

func Warn(s string) string {
	return Paint(s, ColorBold, ColorYellow)
}

func Dim(s string) string {
	return Paint(s, ColorDim)
}

func Error(s string) string {
	return Paint(s, ColorRed)
}
