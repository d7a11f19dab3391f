package domain

import "time"

// Config is the resolved application configuration.
type Config struct {
	CacheDir    string
	Listen      string
	CurrentUser string
	CatalogFile string
	Users       map[string]User
	SteamGrid   SteamGridConfig
	Steam       SteamConfig
	Grid        GridConfig
	Log         LogConfig
}

// User holds the catalog account of one configured user.
type User struct {
	Name    string
	SteamID string
	APIKey  string
}

// SteamGridConfig configures the artwork candidate service.
type SteamGridConfig struct {
	APIKey  string
	BaseURL string
	// Relay marks BaseURL as a relay that injects the credential server side.
	Relay   bool
	Timeout time.Duration
}

// SteamConfig configures the catalog service.
type SteamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GridConfig holds the loading and layout parameters of the grid.
type GridConfig struct {
	ChunkSize       int
	ChunkDelay      time.Duration
	PageSize        int
	BufferRows      int
	ScrollThreshold int
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
	JSON  bool
	File  string
}

// UserOrCurrent returns the named user, or the current user when name is empty.
func (c *Config) UserOrCurrent(name string) (User, error) {
	if name == "" {
		name = c.CurrentUser
	}
	if name == "" {
		return User{}, ErrNoUserSelected
	}
	u, ok := c.Users[name]
	if !ok {
		return User{}, ErrUnknownUser
	}
	if u.Name == "" {
		u.Name = name
	}
	return u, nil
}

// DefaultGridConfig returns the built-in grid parameters.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		ChunkSize:       ChunkSize,
		ChunkDelay:      InterChunkDelay,
		PageSize:        PageSize,
		BufferRows:      BufferRows,
		ScrollThreshold: ScrollThreshold,
	}
}
