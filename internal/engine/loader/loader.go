// Package loader resolves artwork for batches of items in bounded chunks.
package loader

import (
	"context"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Loader runs batch loads against a resolver and records the results in a State.
// Chunks run one after another; resolutions inside a chunk run concurrently.
type Loader struct {
	resolver ports.ArtworkResolver
	state    *State
	logger   ports.Logger
	tracer   ports.Tracer

	clock     clockwork.Clock
	chunkSize int
	delay     time.Duration
	notify    func([]domain.ItemID)
	discard   func(domain.ImageRef)
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock replaces the clock used for the pause between chunks.
func WithClock(c clockwork.Clock) Option {
	return func(l *Loader) {
		l.clock = c
	}
}

// WithChunkSize sets how many resolutions run concurrently.
func WithChunkSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.chunkSize = n
		}
	}
}

// WithDelay sets the pause between chunks.
func WithDelay(d time.Duration) Option {
	return func(l *Loader) {
		if d >= 0 {
			l.delay = d
		}
	}
}

// WithNotify registers a callback invoked with the ids of every merged chunk.
func WithNotify(fn func([]domain.ItemID)) Option {
	return func(l *Loader) {
		l.notify = fn
	}
}

// WithDiscard registers a callback for references that arrive after their
// item was released.
func WithDiscard(fn func(domain.ImageRef)) Option {
	return func(l *Loader) {
		l.discard = fn
	}
}

// New creates a Loader with the default chunk size and delay.
func New(
	resolver ports.ArtworkResolver,
	state *State,
	logger ports.Logger,
	tracer ports.Tracer,
	opts ...Option,
) *Loader {
	l := &Loader{
		resolver:  resolver,
		state:     state,
		logger:    logger,
		tracer:    tracer,
		clock:     clockwork.NewRealClock(),
		chunkSize: domain.ChunkSize,
		delay:     domain.InterChunkDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the state the loader records into.
func (l *Loader) State() *State {
	return l.state
}

// LoadBatch resolves artwork for ids that are neither loading nor cached.
// It returns after every chunk was merged, or with the context error when
// canceled. Items of chunks that never started return to unrequested.
func (l *Loader) LoadBatch(ctx context.Context, ids []domain.ItemID) error {
	claimed := l.state.Claim(ids)
	if len(claimed) == 0 {
		return nil
	}

	ctx, span := l.tracer.Start(ctx, "loader.batch", ports.WithAttribute("items", len(claimed)))
	defer span.End()

	chunks := slices.Collect(slices.Chunk(claimed, l.chunkSize))
	for i, chunk := range chunks {
		if i > 0 && l.delay > 0 {
			select {
			case <-ctx.Done():
			case <-l.clock.After(l.delay):
			}
		}
		if err := ctx.Err(); err != nil {
			for _, rest := range chunks[i:] {
				l.state.Reset(rest)
			}
			l.logger.Debug("batch load canceled", "remaining_chunks", len(chunks)-i)
			span.RecordError(err)
			return err
		}
		l.runChunk(ctx, chunk)
	}
	return ctx.Err()
}

func (l *Loader) runChunk(ctx context.Context, chunk []domain.ItemID) {
	ctx, span := l.tracer.Start(ctx, "loader.chunk", ports.WithAttribute("items", len(chunk)))
	defer span.End()

	results := make([]*domain.ImageRef, len(chunk))

	var g errgroup.Group
	g.SetLimit(l.chunkSize)
	for i, id := range chunk {
		g.Go(func() error {
			results[i] = l.resolver.Resolve(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	canceled := ctx.Err() != nil
	merged := make([]domain.ItemID, 0, len(chunk))
	for i, id := range chunk {
		ref := results[i]
		if ref == nil && canceled {
			l.state.Reset([]domain.ItemID{id})
			continue
		}
		if !l.state.Complete(id, ref) {
			if ref != nil && l.discard != nil {
				l.discard(*ref)
			}
			continue
		}
		merged = append(merged, id)
	}

	span.SetAttribute("merged", len(merged))
	if len(merged) > 0 && l.notify != nil {
		l.notify(merged)
	}
}
