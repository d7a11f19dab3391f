package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/session"
)

// waitForUpdate blocks until the session reports a change.
func waitForUpdate(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		<-sess.Updates()
		return updateMsg{}
	}
}

// loadItemsCmd fetches the item list of user.
func loadItemsCmd(ctx context.Context, sess *session.Session, user domain.User) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: sess.Load(ctx, user)}
	}
}

// loadVisibleCmd loads artwork for the materialized items.
func loadVisibleCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		err := sess.LoadVisible(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return batchDoneMsg{err: err}
	}
}

// requestMoreCmd reveals another page when the window is near the end.
func requestMoreCmd(ctx context.Context, sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		grew, err := sess.RequestMore(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		return moreMsg{grew: grew, err: err}
	}
}

// refreshCmd replaces the artwork of item.
func refreshCmd(ctx context.Context, sess *session.Session, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{item: item, found: sess.Refresh(ctx, item.ID) != nil}
	}
}

// clearCacheCmd empties the artwork store.
func clearCacheCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		n, err := sess.ClearCache()
		return clearedMsg{removed: n, err: err}
	}
}
