package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/config"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const fullConfig = `
cache_dir: /var/cache/shelf
listen: ":8080"
current_user: alice
users:
  alice:
    name: Alice
    steam_id: "76561198000000001"
    api_key: steam-key
  bob:
    steam_id: "76561198000000002"
steamgriddb:
  api_key: grid-key
  timeout: 5s
grid:
  chunk_size: 6
  chunk_delay: 250ms
  page_size: 24
log:
  level: debug
  json: true
`

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T, opts ...config.Option) *config.Loader {
	t.Helper()
	base := []config.Option{config.WithEnvFile(""), config.WithSearchDirs(t.TempDir())}
	return config.NewLoader(quietLogger(t), append(base, opts...)...)
}

func TestLoader_Defaults(t *testing.T) {
	l := newLoader(t)

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultGridConfig(), cfg.Grid)
	assert.Equal(t, domain.DefaultCacheDir(), cfg.CacheDir)
	assert.Equal(t, "https://www.steamgriddb.com/api/v2", cfg.SteamGrid.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.SteamGrid.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Users)
	assert.Empty(t, l.Path())
}

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, fullConfig)

	l := newLoader(t, config.WithSearchDirs(dir))

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, path, l.Path())
	assert.Equal(t, "/var/cache/shelf", cfg.CacheDir)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "grid-key", cfg.SteamGrid.APIKey)
	assert.Equal(t, 5*time.Second, cfg.SteamGrid.Timeout)
	assert.Equal(t, 6, cfg.Grid.ChunkSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Grid.ChunkDelay)
	assert.Equal(t, 24, cfg.Grid.PageSize)
	assert.Equal(t, domain.BufferRows, cfg.Grid.BufferRows, "unset keys keep their default")
	assert.True(t, cfg.Log.JSON)

	alice, err := cfg.UserOrCurrent("")
	require.NoError(t, err)
	assert.Equal(t, domain.User{Name: "Alice", SteamID: "76561198000000001", APIKey: "steam-key"}, alice)

	bob, err := cfg.UserOrCurrent("bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", bob.Name, "name falls back to the map key")
}

func TestLoader_ExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "listen: \":7000\"\n")

	l := newLoader(t, config.WithFile(path))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Listen)
	assert.Equal(t, path, l.Path())
}

func TestLoader_ExplicitFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	l := newLoader(t, config.WithFile(path))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGridConfig(), cfg.Grid)
}

func TestLoader_PathEnv(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "current_user: \"\"\nlisten: \":7100\"\n")
	t.Setenv(config.PathEnv, path)

	l := config.NewLoader(quietLogger(t), config.WithEnvFile(""))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7100", cfg.Listen)
}

func TestLoader_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, fullConfig)
	t.Setenv("SHELF_STEAMGRIDDB_API_KEY", "env-key")
	t.Setenv("SHELF_GRID_CHUNK_SIZE", "3")

	l := newLoader(t, config.WithSearchDirs(dir))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.SteamGrid.APIKey)
	assert.Equal(t, 3, cfg.Grid.ChunkSize)
}

func TestLoader_EnvFile(t *testing.T) {
	const key = "SHELF_LISTEN"
	_, preset := os.LookupEnv(key)
	if preset {
		t.Skipf("%s is set in the environment", key)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv(key)
	})

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=0.0.0.0:9999\n"), 0o600))

	l := newLoader(t, config.WithEnvFile(envFile))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Listen)
}

func TestLoader_MissingEnvFileIsIgnored(t *testing.T) {
	l := newLoader(t, config.WithEnvFile(filepath.Join(t.TempDir(), ".env")))

	_, err := l.Load()
	require.NoError(t, err)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "MalformedYAML",
			content: "grid: [unclosed\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "WrongType",
			content: "grid:\n  chunk_size: lots\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "ZeroChunkSize",
			content: "grid:\n  chunk_size: 0\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "NegativeBuffer",
			content: "grid:\n  buffer_rows: -1\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "UnknownCurrentUser",
			content: "current_user: carol\nusers:\n  alice:\n    steam_id: \"1\"\n",
			wantErr: domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := newLoader(t, config.WithSearchDirs(dir)).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}

func TestLoader_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "steamgriddb:\n  api_key: first\n")

	l := newLoader(t, config.WithSearchDirs(dir))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.SteamGrid.APIKey)

	require.NoError(t, os.WriteFile(path, []byte("steamgriddb:\n  api_key: second\n"), 0o600))

	cached, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "first", cached.SteamGrid.APIKey, "Load returns the cached config")

	reloaded, err := l.Reload()
	require.NoError(t, err)
	assert.Equal(t, "second", reloaded.SteamGrid.APIKey)

	require.NoError(t, os.WriteFile(path, []byte("grid:\n  page_size: 0\n"), 0o600))
	_, err = l.Reload()
	require.Error(t, err)

	kept, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", kept.SteamGrid.APIKey, "an invalid reload keeps the previous config")
}
