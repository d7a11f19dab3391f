package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/shelf/internal/adapters/tui"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/ui/style"
	"go.uber.org/mock/gomock"
)

func TestView_Initialization(t *testing.T) {
	m := tui.NewModel(context.Background(), nil, domain.User{}, nil)
	assert.Equal(t, "Initializing...", m.View())
}

func TestView_Grid(t *testing.T) {
	f := newFixture(t, 100)
	view := f.model.View()

	assert.Contains(t, view, "SHELF")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "48 of 100 items")
	assert.Contains(t, view, "sort: name")
	assert.Contains(t, view, "Game 001")
	assert.Contains(t, view, "Game 008")
	assert.NotContains(t, view, "Game 009", "only four rows of two cards fit")
	assert.Contains(t, view, "never played")
	assert.Contains(t, view, "30m played")
	assert.Contains(t, view, style.Circle, "artwork not requested yet")
	assert.Contains(t, view, "/ filter")
}

func TestView_HeightMatchesTerminal(t *testing.T) {
	f := newFixture(t, 100)
	lines := strings.Split(f.model.View(), "\n")
	assert.Len(t, lines, 24)
}

func TestView_Empty(t *testing.T) {
	f := newFixture(t, 0)
	assert.Contains(t, f.model.View(), "No items")
}

func TestView_Unavailable(t *testing.T) {
	f := newFixture(t, 3)
	f.resolver.EXPECT().Refresh(gomock.Any(), domain.ItemID(1)).Return(nil)
	f.sess.Refresh(context.Background(), 1)

	assert.Contains(t, f.model.View(), "no artwork")
}
