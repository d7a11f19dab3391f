package ports

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
)

// ArtworkStore persists artwork bytes per item.
//
//go:generate mockgen -source=artwork_store.go -destination=mocks/mock_artwork_store.go -package=mocks
type ArtworkStore interface {
	// Ensure creates the backing storage if it does not exist. It is idempotent.
	Ensure() error

	// Get returns the stored bytes for id.
	// Returns nil, nil if no entry exists.
	Get(id domain.ItemID) ([]byte, error)

	// Put downloads sourceURL and stores the bytes under id, replacing any entry.
	// Returns nil, nil when the download fails.
	Put(ctx context.Context, id domain.ItemID, sourceURL string) ([]byte, error)

	// Has reports whether an entry exists for id.
	Has(id domain.ItemID) (bool, error)

	// Count returns the number of stored entries.
	Count() (int, error)

	// Clear removes every entry and returns how many were removed.
	Clear() (int, error)
}
