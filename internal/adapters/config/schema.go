package config

import (
	"time"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every environment override, e.g. SHELF_STEAMGRIDDB_API_KEY.
const EnvPrefix = "SHELF"

// PathEnv names an explicit config file.
const PathEnv = EnvPrefix + "_CONFIG"

// File is the on-disk shape of config.yaml.
type File struct {
	CacheDir    string             `mapstructure:"cache_dir"`
	Listen      string             `mapstructure:"listen"`
	CurrentUser string             `mapstructure:"current_user"`
	CatalogFile string             `mapstructure:"catalog_file"`
	Users       map[string]UserDTO `mapstructure:"users"`
	SteamGrid   SteamGridDTO       `mapstructure:"steamgriddb"`
	Steam       SteamDTO           `mapstructure:"steam"`
	Grid        GridDTO            `mapstructure:"grid"`
	Log         LogDTO             `mapstructure:"log"`
}

// UserDTO is a configured catalog account.
type UserDTO struct {
	Name    string `mapstructure:"name"`
	SteamID string `mapstructure:"steam_id"`
	APIKey  string `mapstructure:"api_key"`
}

// SteamGridDTO configures the artwork candidate service.
type SteamGridDTO struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Relay   bool          `mapstructure:"relay"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SteamDTO configures the catalog service.
type SteamDTO struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GridDTO holds loading and layout parameters.
type GridDTO struct {
	ChunkSize       int           `mapstructure:"chunk_size"`
	ChunkDelay      time.Duration `mapstructure:"chunk_delay"`
	PageSize        int           `mapstructure:"page_size"`
	BufferRows      int           `mapstructure:"buffer_rows"`
	ScrollThreshold int           `mapstructure:"scroll_threshold"`
}

// LogDTO configures logging.
type LogDTO struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"`
}

// defaults lists every key with its default. Keys must be known to viper
// for environment overrides to reach Unmarshal.
func defaults() map[string]any {
	grid := domain.DefaultGridConfig()
	return map[string]any{
		"cache_dir":             domain.DefaultCacheDir(),
		"listen":                "127.0.0.1:9971",
		"current_user":          "",
		"catalog_file":          "",
		"steamgriddb.api_key":   "",
		"steamgriddb.base_url":  "https://www.steamgriddb.com/api/v2",
		"steamgriddb.relay":     false,
		"steamgriddb.timeout":   "15s",
		"steam.base_url":        "https://api.steampowered.com",
		"steam.timeout":         "30s",
		"grid.chunk_size":       grid.ChunkSize,
		"grid.chunk_delay":      grid.ChunkDelay.String(),
		"grid.page_size":        grid.PageSize,
		"grid.buffer_rows":      grid.BufferRows,
		"grid.scroll_threshold": grid.ScrollThreshold,
		"log.level":             "info",
		"log.json":              false,
		"log.file":              "",
	}
}

// toDomain converts the file shape to the domain configuration.
func (f *File) toDomain() *domain.Config {
	users := make(map[string]domain.User, len(f.Users))
	for name, u := range f.Users {
		if u.Name == "" {
			u.Name = name
		}
		users[name] = domain.User{Name: u.Name, SteamID: u.SteamID, APIKey: u.APIKey}
	}

	return &domain.Config{
		CacheDir:    f.CacheDir,
		Listen:      f.Listen,
		CurrentUser: f.CurrentUser,
		CatalogFile: f.CatalogFile,
		Users:       users,
		SteamGrid: domain.SteamGridConfig{
			APIKey:  f.SteamGrid.APIKey,
			BaseURL: f.SteamGrid.BaseURL,
			Relay:   f.SteamGrid.Relay,
			Timeout: f.SteamGrid.Timeout,
		},
		Steam: domain.SteamConfig{
			BaseURL: f.Steam.BaseURL,
			Timeout: f.Steam.Timeout,
		},
		Grid: domain.GridConfig{
			ChunkSize:       f.Grid.ChunkSize,
			ChunkDelay:      f.Grid.ChunkDelay,
			PageSize:        f.Grid.PageSize,
			BufferRows:      f.Grid.BufferRows,
			ScrollThreshold: f.Grid.ScrollThreshold,
		},
		Log: domain.LogConfig{
			Level: f.Log.Level,
			JSON:  f.Log.JSON,
			File:  f.Log.File,
		},
	}
}

// validate rejects values the grid cannot work with.
func validate(cfg *domain.Config) error {
	checks := []struct {
		key string
		ok  bool
	}{
		{"grid.chunk_size", cfg.Grid.ChunkSize > 0},
		{"grid.chunk_delay", cfg.Grid.ChunkDelay >= 0},
		{"grid.page_size", cfg.Grid.PageSize > 0},
		{"grid.buffer_rows", cfg.Grid.BufferRows >= 0},
		{"grid.scroll_threshold", cfg.Grid.ScrollThreshold >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return zerr.With(domain.ErrInvalidConfig, "key", c.key)
		}
	}
	if cfg.CurrentUser != "" {
		if _, ok := cfg.Users[cfg.CurrentUser]; !ok {
			err := zerr.With(domain.ErrInvalidConfig, "key", "current_user")
			return zerr.With(err, "user", cfg.CurrentUser)
		}
	}
	return nil
}
