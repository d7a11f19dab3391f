// Package tui provides the terminal grid browser.
package tui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/session"
	"go.trai.ch/shelf/internal/engine/viewport"
	"go.trai.ch/shelf/internal/ui/output"
	"go.trai.ch/shelf/internal/ui/style"
)

// defaultWidth and defaultHeight size the first layout before the terminal reports its size.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Layout returns a session geometry and grid config measured in terminal lines.
// The scroll threshold is rescaled so that two card rows from the end trigger the pager.
func Layout(base domain.GridConfig, width, height int) (viewport.Geometry, domain.GridConfig) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	grid := base
	grid.ScrollThreshold = 2 * cardHeight

	return viewport.Geometry{
		ViewportHeight: max(cardHeight, height-headerLines-footerLines),
		RowHeight:      cardHeight,
		Columns:        viewport.ColumnsFor(width, cardWidth, cardGap),
		BufferRows:     grid.BufferRows,
	}, grid
}

// NewModel creates the grid browser for user over sess.
// w selects the color profile; nil means stderr.
func NewModel(ctx context.Context, sess *session.Session, user domain.User, w io.Writer) *Model {
	out := output.New(w, output.Interactive)
	lipgloss.SetColorProfile(out.Profile)

	input := textinput.New()
	input.CharLimit = 100
	input.Placeholder = "type and press enter"
	input.PromptStyle = lipgloss.NewStyle().Foreground(style.Accent)

	return &Model{
		ctx:     ctx,
		session: sess,
		user:    user,
		keys:    DefaultKeyMap(),
		input:   input,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(style.Accent)),
		),
		Loading: true,
	}
}
