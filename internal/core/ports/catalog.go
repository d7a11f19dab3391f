package ports

import (
	"context"

	"go.trai.ch/shelf/internal/core/domain"
)

// Catalog lists the items owned by a user.
//
//go:generate mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type Catalog interface {
	GetItems(ctx context.Context, user domain.User) ([]domain.Item, error)
}
