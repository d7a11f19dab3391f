package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the directory name used under the user's cache and config dirs.
	AppName = "shelf"

	// ConfigFileName is the base name of the config file, without extension.
	ConfigFileName = "config"

	// ArtworkDBName is the name of the artwork database file under the cache root.
	ArtworkDBName = "artwork.db"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// ClientLogFile is the name of the file receiving log entries posted by HTTP clients.
	ClientLogFile = "client.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Loading and layout defaults.
const (
	// ChunkSize is the number of resolutions a batch load runs concurrently.
	ChunkSize = 12

	// InterChunkDelay is the pause between two chunks of a batch load.
	InterChunkDelay = 100 * time.Millisecond

	// PageSize is the number of items the pager reveals per step.
	PageSize = 48

	// ScrollThreshold is the distance from the bottom that triggers the pager.
	ScrollThreshold = 100

	// BufferRows is the number of rows materialized above and below the viewport.
	BufferRows = 4

	// CardHeight is the height of a grid card in layout units.
	CardHeight = 300

	// CardWidth is the width of a grid card in layout units.
	CardWidth = 200

	// GridGap is the gap between cards in layout units.
	GridGap = 16

	// RowHeight is the height of one grid row including its gap.
	RowHeight = CardHeight + GridGap

	// ScrollCoalesceWindow bounds how often scroll events are recomputed (about 30 Hz).
	ScrollCoalesceWindow = 32 * time.Millisecond

	// WarmDelay is the pause between two items of an artwork warm-up.
	WarmDelay = 100 * time.Millisecond

	// TaskRetention is how long finished tasks are kept before pruning.
	TaskRetention = time.Hour
)

// DefaultCacheDir returns the default artwork cache root.
// It falls back to a relative directory when the user cache dir is unknown.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join("."+AppName, "cache")
	}
	return filepath.Join(dir, AppName)
}

// DefaultConfigDir returns the default directory searched for the config file.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(dir, AppName)
}

// ArtworkDBPath returns the artwork database path under the given cache root.
func ArtworkDBPath(cacheDir string) string {
	return filepath.Join(cacheDir, ArtworkDBName)
}
