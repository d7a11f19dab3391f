// Package pager reveals the item list in fixed size pages as the user
// scrolls towards its end.
package pager

import (
	"context"
	"sync"
	"sync/atomic"

	"go.trai.ch/shelf/internal/core/domain"
)

// Prefetcher loads artwork for ids before they are revealed.
type Prefetcher interface {
	LoadBatch(ctx context.Context, ids []domain.ItemID) error
}

// StatusSource reports the load state of an item.
type StatusSource interface {
	Status(id domain.ItemID) domain.LoadState
}

// ShouldLoadMore reports whether the remaining scroll distance is below threshold.
func ShouldLoadMore(scrollOffset, scrollHeight, viewportHeight, threshold int) bool {
	return scrollHeight-scrollOffset-viewportHeight < threshold
}

// Pager tracks how many items are revealed. The count only grows until Reset.
type Pager struct {
	prefetch Prefetcher
	status   StatusSource
	pageSize int
	onChange func(int)

	mu       sync.Mutex
	count    int
	inFlight atomic.Bool
}

// Option configures a Pager.
type Option func(*Pager)

// WithPageSize sets how many items one page reveals.
func WithPageSize(n int) Option {
	return func(p *Pager) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// WithOnChange registers a callback invoked with every published count.
func WithOnChange(fn func(int)) Option {
	return func(p *Pager) {
		p.onChange = fn
	}
}

// New creates a Pager that starts with one page revealed.
func New(prefetch Prefetcher, status StatusSource, opts ...Option) *Pager {
	p := &Pager{
		prefetch: prefetch,
		status:   status,
		pageSize: domain.PageSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.count = p.pageSize
	return p
}

// Count returns the number of revealed items, which may exceed the list length.
func (p *Pager) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// Visible returns the revealed count clamped to total.
func (p *Pager) Visible(total int) int {
	return max(0, min(p.Count(), total))
}

// Loading reports whether a page request is underway.
func (p *Pager) Loading() bool {
	return p.inFlight.Load()
}

// Reset returns to one revealed page.
func (p *Pager) Reset() {
	p.mu.Lock()
	p.count = p.pageSize
	p.mu.Unlock()
}

// RequestMore reveals the next page of items. Artwork for newly revealed
// items that are neither loading nor cached is loaded before the new count
// is published; unavailable items are queried again. It reports whether the count grew. Calls made while a request
// is underway return immediately.
func (p *Pager) RequestMore(ctx context.Context, items []domain.Item) (bool, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false, nil
	}
	defer p.inFlight.Store(false)

	current := p.Count()
	if current >= len(items) {
		return false, nil
	}
	next := min(current+p.pageSize, len(items))

	pending := make([]domain.ItemID, 0, next-current)
	for _, it := range items[current:next] {
		if p.status != nil {
			switch p.status.Status(it.ID) {
			case domain.LoadLoading, domain.LoadCached:
				continue
			}
		}
		pending = append(pending, it.ID)
	}

	if len(pending) > 0 && p.prefetch != nil {
		if err := p.prefetch.LoadBatch(ctx, pending); err != nil {
			return false, err
		}
	}

	p.mu.Lock()
	grew := next > p.count
	if grew {
		p.count = next
	}
	p.mu.Unlock()

	if grew && p.onChange != nil {
		p.onChange(next)
	}
	return grew, nil
}

// MaybeLoadMore calls RequestMore when the scroll position is within threshold of the end.
func (p *Pager) MaybeLoadMore(
	ctx context.Context,
	items []domain.Item,
	scrollOffset, scrollHeight, viewportHeight, threshold int,
) (bool, error) {
	if !ShouldLoadMore(scrollOffset, scrollHeight, viewportHeight, threshold) {
		return false, nil
	}
	return p.RequestMore(ctx, items)
}
