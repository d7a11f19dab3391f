package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/shelf/internal/adapters/logger"
)

func newTestHandler(t *testing.T) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}), buf
}

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		level      slog.Level
		msg        string
		goldenName string
	}{
		{level: slog.LevelInfo, msg: "handler info", goldenName: "handler_info"},
		{level: slog.LevelWarn, msg: "handler warn", goldenName: "handler_warn"},
		{level: slog.LevelError, msg: "handler error", goldenName: "handler_error"},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			h, buf := newTestHandler(t)
			slog.New(h).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Run("multiple", func(t *testing.T) {
		h, buf := newTestHandler(t)
		slog.New(h.WithAttrs([]slog.Attr{slog.String("a", "1"), slog.Int("b", 2)})).Info("attrs")

		goldie.New(t).Assert(t, "handler_attrs_multi", buf.Bytes())
	})

	t.Run("group attr", func(t *testing.T) {
		h, buf := newTestHandler(t)
		slog.New(h.WithAttrs([]slog.Attr{slog.Group("g", slog.String("k", "v"))})).Info("group attr")

		goldie.New(t).Assert(t, "handler_attrs_group", buf.Bytes())
	})
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		h, buf := newTestHandler(t)
		slog.New(h.WithGroup("request")).Info("grouped", "id", "123")

		goldie.New(t).Assert(t, "handler_group_single", buf.Bytes())
	})

	t.Run("nested", func(t *testing.T) {
		h, buf := newTestHandler(t)
		slog.New(h.WithGroup("a").WithGroup("b")).Info("nested", "key", "val")

		goldie.New(t).Assert(t, "handler_group_nested", buf.Bytes())
	})

	t.Run("empty name returns same handler", func(t *testing.T) {
		h, _ := newTestHandler(t)
		assert.Same(t, h, h.WithGroup(""))
	})
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}
