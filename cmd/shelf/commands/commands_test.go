package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/cmd/shelf/commands"
	"go.trai.ch/shelf/internal/app"
	"go.trai.ch/shelf/internal/build"
)

type mockApp struct {
	browseFunc func(ctx context.Context, opts app.BrowseOptions) error
	serveFunc  func(ctx context.Context, opts app.ServeOptions) error
	warmFunc   func(ctx context.Context, opts app.WarmOptions) error
	cleanFunc  func(ctx context.Context) error
}

func (m *mockApp) Browse(ctx context.Context, opts app.BrowseOptions) error {
	if m.browseFunc != nil {
		return m.browseFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Serve(ctx context.Context, opts app.ServeOptions) error {
	if m.serveFunc != nil {
		return m.serveFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Warm(ctx context.Context, opts app.WarmOptions) error {
	if m.warmFunc != nil {
		return m.warmFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func TestCommands_Browse(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BrowseOptions
		mock := &mockApp{
			browseFunc: func(_ context.Context, opts app.BrowseOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"browse", "-u", "bob", "--mode", "linear", "--sort", "recent", "half", "life"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, app.BrowseOptions{User: "bob", Mode: "linear", Sort: "recent", Query: "half life"}, captured)
	})

	t.Run("uses defaults", func(t *testing.T) {
		var captured app.BrowseOptions
		mock := &mockApp{
			browseFunc: func(_ context.Context, opts app.BrowseOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"browse"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BrowseOptions{Mode: "auto", Sort: "name"}, captured)
	})

	t.Run("returns error on browse failure", func(t *testing.T) {
		mock := &mockApp{
			browseFunc: func(context.Context, app.BrowseOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"browse"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Serve(t *testing.T) {
	var captured app.ServeOptions
	mock := &mockApp{
		serveFunc: func(_ context.Context, opts app.ServeOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"serve", "--listen", "127.0.0.1:9000"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "127.0.0.1:9000", captured.Listen)
}

func TestCommands_ServeRejectsArgs(t *testing.T) {
	mock := &mockApp{
		serveFunc: func(context.Context, app.ServeOptions) error {
			panic("should not be called")
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"serve", "extra"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	require.Error(t, cli.Execute(context.Background()))
}

func TestCommands_Warm(t *testing.T) {
	var captured app.WarmOptions
	called := false
	mock := &mockApp{
		warmFunc: func(_ context.Context, opts app.WarmOptions) error {
			captured = opts
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"warm", "--user", "alice"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
	assert.Equal(t, "alice", captured.User)
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(context.Context) error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")

	var got any
	mock := &mockApp{
		cleanFunc: func(ctx context.Context) error {
			got = ctx.Value(key{})
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(ctx))
	assert.Equal(t, "value", got)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "shelf version "+build.Version)
	assert.Contains(t, buf.String(), "commit: "+build.Commit)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}
