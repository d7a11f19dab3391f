package ports

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
)

// ArtworkResolver turns an item id into a displayable image reference.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ArtworkResolver interface {
	// Resolve returns a reference for id, or nil when no artwork could be found.
	// It never fails; every failure degrades to nil.
	Resolve(ctx context.Context, id domain.ItemID) *domain.ImageRef

	// Refresh skips the store lookup and replaces the stored artwork for id.
	Refresh(ctx context.Context, id domain.ItemID) *domain.ImageRef

	// Prime makes sure artwork for id is stored without issuing a reference.
	// It reports whether the store holds an entry afterwards.
	Prime(ctx context.Context, id domain.ItemID) bool

	// SetCredential replaces the candidate service credential.
	SetCredential(key string)
}

// RefIssuer wraps artwork bytes into displayable references.
type RefIssuer interface {
	Issue(id domain.ItemID, data []byte) domain.ImageRef
}
