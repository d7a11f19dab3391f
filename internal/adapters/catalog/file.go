package catalog

import (
	"context"
	"os"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// fileDTO is the on-disk layout of a catalog file.
type fileDTO struct {
	Items []itemDTO `yaml:"items"`
}

type itemDTO struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Playtime   int    `yaml:"playtime"`
	LastPlayed int64  `yaml:"last_played"`
}

// File serves the same item list to every user from a YAML file.
// The file is read on every call so edits show up without a restart.
type File struct {
	path string
}

// NewFile creates a catalog backed by path.
func NewFile(path string) *File {
	return &File{path: path}
}

// GetItems returns the items listed in the file.
func (f *File) GetItems(ctx context.Context, _ domain.User) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogUnavailable.Error()), "path", f.path)
	}

	var dto fileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogUnavailable.Error()), "path", f.path)
	}

	items := make([]domain.Item, 0, len(dto.Items))
	for i, it := range dto.Items {
		if it.ID <= 0 {
			invalid := zerr.With(domain.ErrInvalidItemID, "path", f.path)
			return nil, zerr.With(invalid, "index", i)
		}
		items = append(items, domain.Item{
			ID:              domain.ItemID(it.ID),
			DisplayName:     it.Name,
			PlaytimeMinutes: it.Playtime,
			LastPlayedAt:    it.LastPlayed,
		})
	}
	return items, nil
}
