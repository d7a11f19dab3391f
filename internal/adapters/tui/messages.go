package tui

import "go.trai.ch/shelf/internal/core/domain"

// updateMsg reports that artwork was merged or the window moved.
type updateMsg struct{}

// loadedMsg reports that the item list was fetched.
type loadedMsg struct {
	err error
}

// batchDoneMsg reports that a load of the materialized items finished.
type batchDoneMsg struct {
	err error
}

// moreMsg reports the outcome of a page request.
type moreMsg struct {
	grew bool
	err  error
}

// refreshedMsg reports a single artwork refresh.
type refreshedMsg struct {
	item  domain.Item
	found bool
}

// clearedMsg reports a cache clear.
type clearedMsg struct {
	removed int
	err     error
}
