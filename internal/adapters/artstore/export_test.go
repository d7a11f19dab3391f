package artstore

import (
	"net/http"

	"go.trai.ch/shelf/internal/core/ports"
)

// NewStoreWithClient exports newStoreWithClient for testing.
func NewStoreWithClient(root string, logger ports.Logger, client *http.Client) *Store {
	return newStoreWithClient(root, logger, client)
}
