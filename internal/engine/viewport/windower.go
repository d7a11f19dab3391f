package viewport

import (
	"sync"
	"time"

	"go.trai.ch/shelf/internal/coalesce"
	"go.trai.ch/shelf/internal/core/domain"
)

// Windower keeps the visible range in sync with the container.
// Resizes recompute immediately; scroll events are coalesced so the range is
// recomputed at most once per window, always ending with the last offset.
type Windower struct {
	mu       sync.Mutex
	geo      Geometry
	rng      domain.VisibleRange
	onChange func(domain.VisibleRange)
	scroll   *coalesce.Coalescer[int]
}

// WindowerOption configures a Windower.
type WindowerOption func(*windowerConfig)

type windowerConfig struct {
	window time.Duration
}

// WithCoalesceWindow sets the scroll coalescing window.
func WithCoalesceWindow(d time.Duration) WindowerOption {
	return func(c *windowerConfig) {
		c.window = d
	}
}

// NewWindower creates a Windower for geo. onChange, if set, is called with
// every new range.
func NewWindower(geo Geometry, onChange func(domain.VisibleRange), opts ...WindowerOption) (*Windower, error) {
	rng, err := Compute(geo)
	if err != nil {
		return nil, err
	}

	cfg := windowerConfig{window: domain.ScrollCoalesceWindow}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &Windower{
		geo:      geo,
		rng:      rng,
		onChange: onChange,
	}
	w.scroll = coalesce.New(cfg.window, w.applyScroll)
	return w, nil
}

// Range returns the current visible range.
func (w *Windower) Range() domain.VisibleRange {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rng
}

// Geometry returns the current geometry.
func (w *Windower) Geometry() Geometry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.geo
}

// Scroll records a new scroll offset. Negative offsets are treated as zero.
func (w *Windower) Scroll(offset int) {
	w.scroll.Add(max(0, offset))
}

// Resize applies a new viewport height and column count immediately.
func (w *Windower) Resize(viewportHeight, columns int) error {
	return w.update(func(g *Geometry) {
		g.ViewportHeight = viewportHeight
		g.Columns = columns
	})
}

// SetItemCount applies a new item count immediately. The scroll offset is
// kept inside the content.
func (w *Windower) SetItemCount(n int) error {
	return w.update(func(g *Geometry) {
		g.ItemCount = n
		if limit := max(0, TotalHeight(n, g.Columns, g.RowHeight)-g.ViewportHeight); g.ScrollOffset > limit {
			g.ScrollOffset = limit
		}
	})
}

// Flush applies a pending scroll offset now.
func (w *Windower) Flush() {
	w.scroll.Flush()
}

// Close discards a pending scroll offset.
func (w *Windower) Close() {
	w.scroll.Stop()
}

func (w *Windower) applyScroll(offset int) {
	_ = w.update(func(g *Geometry) {
		g.ScrollOffset = offset
	})
}

func (w *Windower) update(mutate func(*Geometry)) error {
	w.mu.Lock()
	next := w.geo
	mutate(&next)
	rng, err := Compute(next)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	changed := rng != w.rng
	w.geo = next
	w.rng = rng
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange(rng)
	}
	return nil
}
