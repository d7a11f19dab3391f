// Package resolver turns item ids into displayable artwork references.
package resolver

import (
	"context"
	"errors"
	"sync/atomic"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Resolver implements ports.ArtworkResolver.
// The store is consulted first; on a miss the candidate service is queried,
// the best candidate is stored and the stored bytes are returned.
// Concurrent calls for the same id share one resolution.
type Resolver struct {
	store  ports.ArtworkStore
	source ports.CandidateSource
	issuer ports.RefIssuer
	logger ports.Logger
	tracer ports.Tracer

	group            singleflight.Group
	credentialWarned atomic.Bool
}

// New creates a Resolver.
func New(
	store ports.ArtworkStore,
	source ports.CandidateSource,
	issuer ports.RefIssuer,
	logger ports.Logger,
	tracer ports.Tracer,
) *Resolver {
	return &Resolver{
		store:  store,
		source: source,
		issuer: issuer,
		logger: logger,
		tracer: tracer,
	}
}

type outcome struct {
	data []byte
	url  string
}

// Resolve returns a reference for id, or nil when nothing could be found.
func (r *Resolver) Resolve(ctx context.Context, id domain.ItemID) *domain.ImageRef {
	return r.wrap(id, r.do(ctx, "resolve:", id, true))
}

// Refresh ignores any stored entry and replaces it with fresh artwork.
func (r *Resolver) Refresh(ctx context.Context, id domain.ItemID) *domain.ImageRef {
	return r.wrap(id, r.do(ctx, "refresh:", id, false))
}

// Prime stores artwork for id when missing and reports whether an entry exists afterwards.
func (r *Resolver) Prime(ctx context.Context, id domain.ItemID) bool {
	if ok, err := r.store.Has(id); err == nil && ok {
		return true
	}
	out := r.do(ctx, "resolve:", id, true)
	return out != nil && out.data != nil
}

// SetCredential forwards key to the candidate service and re-arms the missing credential warning.
func (r *Resolver) SetCredential(key string) {
	r.source.SetCredential(key)
	r.credentialWarned.Store(false)
}

// do runs one shared resolution per key. The shared work is detached from the
// caller that started it, so a canceled caller only abandons its own wait.
func (r *Resolver) do(ctx context.Context, prefix string, id domain.ItemID, useStore bool) *outcome {
	ch := r.group.DoChan(prefix+id.String(), func() (any, error) {
		return r.resolve(context.WithoutCancel(ctx), id, useStore), nil
	})
	select {
	case res := <-ch:
		out, _ := res.Val.(*outcome)
		return out
	case <-ctx.Done():
		return nil
	}
}

func (r *Resolver) wrap(id domain.ItemID, out *outcome) *domain.ImageRef {
	if out == nil {
		return nil
	}
	if out.data != nil {
		ref := r.issuer.Issue(id, out.data)
		return &ref
	}
	return &domain.ImageRef{URL: out.url}
}

func (r *Resolver) resolve(ctx context.Context, id domain.ItemID, useStore bool) *outcome {
	ctx, span := r.tracer.Start(ctx, "resolve_artwork", ports.WithAttribute("item_id", int(id)))
	defer span.End()

	if useStore {
		data, err := r.store.Get(id)
		switch {
		case err != nil:
			span.RecordError(err)
			r.logger.Warn("artwork store read failed", "item", id, "error", err)
		case data != nil:
			span.SetAttribute("source", "store")
			return &outcome{data: data}
		}
	}

	candidate, ok := r.pick(ctx, id)
	if !ok {
		span.SetAttribute("source", "none")
		return nil
	}

	data, err := r.store.Put(ctx, id, candidate.URL)
	if err != nil {
		span.RecordError(err)
		r.logger.Warn("artwork store write failed", "item", id, "error", err)
	}
	if data != nil {
		span.SetAttribute("source", "service")
		return &outcome{data: data}
	}

	span.SetAttribute("source", "remote")
	return &outcome{url: candidate.URL}
}

func (r *Resolver) pick(ctx context.Context, id domain.ItemID) (domain.GridCandidate, bool) {
	candidates, err := r.source.GetCandidates(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			if r.credentialWarned.CompareAndSwap(false, true) {
				r.logger.Warn("artwork service credential is not configured, skipping lookups")
			}
			return domain.GridCandidate{}, false
		}
		r.logger.Warn("artwork candidates unavailable", "item", id, "error", err)
		return domain.GridCandidate{}, false
	}

	candidate, ok := Select(candidates)
	if !ok {
		r.logger.Debug("no artwork candidates", "item", id)
	}
	return candidate, ok
}
