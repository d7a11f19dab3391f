package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shelf/internal/ui/style"
)

// Card geometry in terminal cells. A row is one card tall; the gap is horizontal only.
const (
	cardInnerWidth  = 24
	cardInnerHeight = 3
	cardWidth       = cardInnerWidth + 2
	cardHeight      = cardInnerHeight + 2
	cardGap         = 1

	// headerLines and footerLines frame the grid.
	headerLines = 2
	footerLines = 1
)

var (
	cardStyle = lipgloss.NewStyle().
			Width(cardInnerWidth).
			Height(cardInnerHeight).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Muted)

	selectedCardStyle = cardStyle.
				BorderForeground(style.Accent)

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(style.Muted)

	artCachedStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	artRemoteStyle = lipgloss.NewStyle().
			Foreground(style.Blue)

	artMissingStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	artPendingStyle = lipgloss.NewStyle().
			Foreground(style.Muted).
			Faint(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(style.Surface)

	statusStyle = lipgloss.NewStyle().
			Foreground(style.Muted)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)
)
