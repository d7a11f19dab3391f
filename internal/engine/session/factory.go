package session

import (
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/shelf/internal/engine/viewport"
)

// Factory creates sessions sharing one set of collaborators.
// Front-ends measure geometry in their own units, so each supplies its own.
type Factory struct {
	Catalog  ports.Catalog
	Store    ports.ArtworkStore
	Resolver ports.ArtworkResolver
	Table    *refs.Table
	Logger   ports.Logger
	Tracer   ports.Tracer
	Grid     domain.GridConfig
}

// New creates a Session for geo.
func (f *Factory) New(geo viewport.Geometry) (*Session, error) {
	return New(f.Catalog, f.Store, f.Resolver, f.Table, f.Logger, f.Tracer, Config{
		Grid:     f.Grid,
		Geometry: geo,
	})
}
