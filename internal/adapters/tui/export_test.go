package tui

import tea "github.com/charmbracelet/bubbletea"

// LoadedMsgForTest reports a successful list load, as the load command would.
func LoadedMsgForTest() tea.Msg {
	return loadedMsg{}
}
