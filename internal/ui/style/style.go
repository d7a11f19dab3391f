// Package style holds the palette and glyphs shared by the terminal front-ends.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent  = lipgloss.Color("#E8A33D")
	Muted   = lipgloss.Color("#6B7280")
	White   = lipgloss.Color("#FFFFFF")
	Surface = lipgloss.Color("#1F2430")
	Green   = lipgloss.Color("#3FB950")
	Red     = lipgloss.Color("#F85149")
	Blue    = lipgloss.Color("#58A6FF")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Art     = "▣"
	Remote  = "⇣"
	Pending = "…"
)
