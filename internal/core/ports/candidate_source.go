package ports

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
)

// CandidateSource lists artwork candidates for an item.
//
//go:generate mockgen -source=candidate_source.go -destination=mocks/mock_candidate_source.go -package=mocks
type CandidateSource interface {
	// GetCandidates returns the candidates the service knows for id.
	// Returns domain.ErrMissingCredential without any network call when no credential is set.
	GetCandidates(ctx context.Context, id domain.ItemID) ([]domain.GridCandidate, error)

	// SetCredential replaces the service credential.
	SetCredential(key string)
}
