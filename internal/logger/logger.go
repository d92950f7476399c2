// Package logger provides verbose logging for the reqif CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show each stage of an export.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	styled            = isTerminal(os.Stderr)
)

var (
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Prefixes are coloured only when w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	styled = isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// prefix renders a level tag, coloured when writing to a terminal
// (caller must hold the lock).
func prefix(tag string, style lipgloss.Style) string {
	if styled {
		return style.Render(tag) + " "
	}
	return tag + " "
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix("[DEBUG]", debugStyle)+format+"\n", args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		title := fmt.Sprintf("=== %s ===", name)
		if styled {
			title = sectionStyle.Render(title)
		}
		fmt.Fprintf(output, "\n%s\n", title)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix("[INFO]", infoStyle)+format+"\n", args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix("[WARN]", warnStyle)+format+"\n", args...)
	}
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, prefix("[ERROR]", errorStyle)+format+"\n", args...)
}
