package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	colorPrimary = lipgloss.Color("#818CF8")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#E74C3C")
	colorFire    = lipgloss.Color("#FB923C")
	colorMuted   = lipgloss.Color("#666666")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	fireStyle    = lipgloss.NewStyle().Foreground(colorFire).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	keyStyle     = lipgloss.NewStyle().Foreground(colorPrimary)
	todayStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

const (
	iconOk   = "✓ "
	iconWarn = "! "
	iconErr  = "✗ "
	iconFire = "🔥"
)

// isTTY reports whether f is a terminal.
func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// setColor drops all styling when color is off or stdout is piped.
func setColor(enabled bool) {
	if !enabled || !isTTY(os.Stdout) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
}

func okf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render(iconOk+fmt.Sprintf(format, args...)))
}

func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render(iconWarn+fmt.Sprintf(format, args...)))
}

func printErr(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(iconErr+msg))
}

func header(w io.Writer, s string) {
	fmt.Fprintln(w, titleStyle.Render(s))
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("─", lipgloss.Width(s)+2)))
}

// kv prints a padded key-value line.
func kv(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-15s", key)), value)
}
