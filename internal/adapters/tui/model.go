package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/library"
	"go.trai.ch/shelf/internal/engine/session"
	"go.trai.ch/shelf/internal/engine/viewport"
)

// inputMode selects what keystrokes drive.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeFilter
	modeJump
)

// Model is the grid browser. Rows are measured in terminal lines.
type Model struct {
	ctx     context.Context
	session *session.Session
	user    domain.User
	keys    KeyMap

	input   textinput.Model
	spinner spinner.Model
	mode    inputMode

	Width   int
	Height  int
	Columns int
	Cursor  int
	// TopRow is the first grid row on screen.
	TopRow int

	requested    domain.VisibleRange
	generation   int
	requestedGen int

	Loading bool
	Status  string
	Err     error
}

// Init starts loading the item list and listening for session updates.
//
//nolint:gocritic // hugeParam ignored
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		loadItemsCmd(m.ctx, m.session, m.user),
		waitForUpdate(m.session),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop,gocritic // hugeParam ignored, cyclop ignored
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeFilter, modeJump:
			return m, m.updateInput(msg)
		default:
			return m, m.updateBrowse(msg)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.sync()

	case loadedMsg:
		m.Loading = false
		m.Err = msg.err
		m.generation++
		m.moveTo(0)
		return m, m.sync()

	case updateMsg:
		return m, tea.Batch(waitForUpdate(m.session), m.sync())

	case batchDoneMsg:
		if msg.err != nil {
			m.Err = msg.err
		}

	case moreMsg:
		if msg.err != nil {
			m.Err = msg.err
		}

	case refreshedMsg:
		if msg.found {
			m.Status = "Refreshed artwork for " + msg.item.DisplayName
		} else {
			m.Status = "No artwork found for " + msg.item.DisplayName
		}

	case clearedMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Status = fmt.Sprintf("Cleared %d stored images", msg.removed)
		m.generation++
		return m, m.sync()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	cols := max(1, m.Columns)
	page := cols * max(1, m.visibleRows())

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.Cursor - cols)
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.Cursor + cols)
	case key.Matches(msg, m.keys.Left):
		m.moveTo(m.Cursor - 1)
	case key.Matches(msg, m.keys.Right):
		m.moveTo(m.Cursor + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveTo(m.Cursor - page)
	case key.Matches(msg, m.keys.PageDown):
		m.moveTo(m.Cursor + page)
	case key.Matches(msg, m.keys.Home):
		m.moveTo(0)
	case key.Matches(msg, m.keys.End):
		m.moveTo(m.session.Revealed() - 1)
	case key.Matches(msg, m.keys.Filter):
		return m.openInput(modeFilter, "/ ", m.session.Query())
	case key.Matches(msg, m.keys.Jump):
		return m.openInput(modeJump, ": ", "")
	case key.Matches(msg, m.keys.Sort):
		return m.cycleSort()
	case key.Matches(msg, m.keys.Refresh):
		if item, ok := m.Selected(); ok {
			m.Status = "Refreshing " + item.DisplayName + "..."
			return refreshCmd(m.ctx, m.session, item)
		}
	case key.Matches(msg, m.keys.Clear):
		m.Status = "Clearing stored artwork..."
		return clearCacheCmd(m.session)
	case key.Matches(msg, m.keys.Escape):
		if m.session.Query() != "" {
			return m.applyQuery("")
		}
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeInput()
		return nil
	case key.Matches(msg, m.keys.Enter):
		value := m.input.Value()
		mode := m.mode
		m.closeInput()
		if mode == modeJump {
			m.jump(value)
			return nil
		}
		return m.applyQuery(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) openInput(mode inputMode, prompt, value string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
}

func (m *Model) applyQuery(query string) tea.Cmd {
	if err := m.session.SetQuery(query); err != nil {
		m.Err = err
		return nil
	}
	m.generation++
	m.moveTo(0)
	return m.sync()
}

func (m *Model) cycleSort() tea.Cmd {
	keys := library.SortKeys
	next := keys[(slices.Index(keys, m.session.SortKey())+1)%len(keys)]
	if err := m.session.SetSort(next); err != nil {
		m.Err = err
		return nil
	}
	m.Status = "Sorted by " + string(next)
	m.generation++
	m.moveTo(0)
	return m.sync()
}

// jump moves the cursor to the best ranked match among the revealed items.
func (m *Model) jump(query string) {
	items := m.session.ItemsBetween(0, m.session.Revealed())
	matches := library.Rank(items, query)
	if len(matches) == 0 {
		m.Status = fmt.Sprintf("No match for %q", query)
		return
	}
	m.Status = ""
	m.moveTo(matches[0].Index)
}

// Selected returns the item under the cursor.
func (m *Model) Selected() (domain.Item, bool) {
	items := m.session.ItemsBetween(m.Cursor, m.Cursor+1)
	if len(items) == 0 {
		return domain.Item{}, false
	}
	return items[0], true
}

func (m *Model) resize(width, height int) {
	m.Width = width
	m.Height = height
	m.Columns = viewport.ColumnsFor(width, cardWidth, cardGap)
	m.input.Width = max(1, width-4)

	if err := m.session.Resize(m.viewHeight(), m.Columns); err != nil {
		m.Err = err
	}
	m.moveTo(m.Cursor)
}

func (m *Model) viewHeight() int {
	return max(cardHeight, m.Height-headerLines-footerLines)
}

func (m *Model) visibleRows() int {
	return max(1, m.viewHeight()/cardHeight)
}

// moveTo places the cursor at index, clamped to the revealed items, and
// scrolls so its row is on screen.
func (m *Model) moveTo(index int) {
	revealed := m.session.Revealed()
	m.Cursor = min(max(index, 0), max(revealed-1, 0))

	cols := max(1, m.Columns)
	row := m.Cursor / cols
	rows := m.visibleRows()
	if row < m.TopRow {
		m.TopRow = row
	} else if row >= m.TopRow+rows {
		m.TopRow = row - rows + 1
	}
	m.TopRow = max(0, m.TopRow)

	m.session.Scroll(m.TopRow * cardHeight)
}

// sync requests artwork for a changed window and asks the pager for more.
func (m *Model) sync() tea.Cmd {
	cmds := []tea.Cmd{requestMoreCmd(m.ctx, m.session)}

	rng := m.session.VisibleRange()
	if rng != m.requested || m.generation != m.requestedGen {
		m.requested = rng
		m.requestedGen = m.generation
		cmds = append(cmds, loadVisibleCmd(m.ctx, m.session))
	}
	return tea.Batch(cmds...)
}
