// Package style provides shared styling primitives for CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Teal   = lipgloss.Color("#14B8A6")
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
	Arrow   = "→"
	Dot     = "●"
)
