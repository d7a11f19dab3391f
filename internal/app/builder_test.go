package app_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/app"
	_ "go.trai.ch/shelf/internal/wiring" // Register providers
)

func TestAppWiring(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Chdir(dir)

	// Verify that the application graph can be constructed
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
