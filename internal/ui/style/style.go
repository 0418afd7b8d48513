// Package style provides shared UI styling primitives including colors,
// icons and the line prefix used across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Prefix starts every line the program prints.
const Prefix = "[anymon]"

// Colors.
var (
	Cyan   = lipgloss.Color("#06B6D4")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)

// Heading renders a bold cyan title, used for `debug` section headers.
func Heading(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Cyan).Render(s)
}
