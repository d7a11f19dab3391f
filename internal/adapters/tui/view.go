package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/ui/style"
)

// View renders the UI.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header()+"\n",
		m.grid(),
		m.footer(),
	)
}

func (m *Model) header() string {
	parts := []string{titleStyle.Render("SHELF")}
	if name := m.session.User().Name; name != "" {
		parts = append(parts, name)
	}
	parts = append(parts,
		fmt.Sprintf("%d of %d items", m.session.Revealed(), m.session.Len()),
		"sort: "+string(m.session.SortKey()),
	)
	if q := m.session.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", q))
	}
	if m.Loading || m.session.Paging() {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, "  ")
}

func (m *Model) grid() string {
	cols := max(1, m.Columns)
	rows := m.visibleRows()
	start := m.TopRow * cols
	items := m.session.ItemsBetween(start, min((m.TopRow+rows)*cols, m.session.Revealed()))

	if len(items) == 0 {
		msg := "No items"
		if m.Loading {
			msg = "Loading library..."
		}
		return lipgloss.NewStyle().Height(m.viewHeight()).Render(statusStyle.Render(msg))
	}

	lines := make([]string, 0, rows)
	for r := 0; r*cols < len(items); r++ {
		row := items[r*cols : min((r+1)*cols, len(items))]
		cards := make([]string, 0, 2*len(row))
		for i, item := range row {
			if i > 0 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.card(item, start+r*cols+i == m.Cursor))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.NewStyle().Height(m.viewHeight()).Render(strings.Join(lines, "\n"))
}

func (m *Model) card(item domain.Item, selected bool) string {
	body := strings.Join([]string{
		nameStyle.Render(truncate(item.DisplayName, cardInnerWidth)),
		m.artwork(item.ID),
		metaStyle.Render(playtime(item.PlaytimeMinutes)),
	}, "\n")

	if selected {
		return selectedCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

// artwork describes the load state of the item's artwork.
func (m *Model) artwork(id domain.ItemID) string {
	switch m.session.Status(id) {
	case domain.LoadCached:
		ref, data, ok := m.session.Artwork(id)
		switch {
		case ok && ref.IsRemote():
			return artRemoteStyle.Render(style.Remote + " remote")
		case ok:
			return artCachedStyle.Render(fmt.Sprintf("%s %s", style.Art, size(len(data))))
		default:
			return artPendingStyle.Render(style.Pending)
		}
	case domain.LoadLoading:
		return m.spinner.View() + " loading"
	case domain.LoadUnavailable:
		return artMissingStyle.Render(style.Cross + " no artwork")
	default:
		return artPendingStyle.Render(style.Circle)
	}
}

func (m *Model) footer() string {
	switch {
	case m.mode != modeBrowse:
		return m.input.View()
	case m.Err != nil:
		return errorStyle.Render(style.Cross + " " + firstLine(m.Err.Error()))
	case m.Status != "":
		return statusStyle.Render(m.Status)
	default:
		return help.New().ShortHelpView(m.keys.ShortHelp())
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func playtime(minutes int) string {
	switch {
	case minutes == 0:
		return "never played"
	case minutes < 60:
		return fmt.Sprintf("%dm played", minutes)
	default:
		return fmt.Sprintf("%.1fh played", float64(minutes)/60)
	}
}

func size(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
