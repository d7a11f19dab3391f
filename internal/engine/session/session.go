// Package session holds the state a front-end renders: the filtered and
// sorted item list, the materialized window and the artwork loaded for it.
package session

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/shelf/internal/engine/library"
	"go.trai.ch/shelf/internal/engine/loader"
	"go.trai.ch/shelf/internal/engine/pager"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/shelf/internal/engine/viewport"
)

// Session composes the loader, pager and windower over one item list.
// Artwork of items that leave the retained window is released, so memory
// stays bounded by the window size rather than the list size.
type Session struct {
	catalog  ports.Catalog
	store    ports.ArtworkStore
	resolver ports.ArtworkResolver
	table    *refs.Table
	logger   ports.Logger

	state    *loader.State
	loader   *loader.Loader
	pager    *pager.Pager
	windower *viewport.Windower
	grid     domain.GridConfig
	updates  chan struct{}

	mu      sync.RWMutex
	user    domain.User
	all     []domain.Item
	view    []domain.Item
	query   string
	sortKey library.SortKey
}

// Config holds the parameters of a Session.
type Config struct {
	Grid     domain.GridConfig
	Geometry viewport.Geometry
	Loader   []loader.Option
}

// New creates a Session. The geometry's item count is managed by the session.
func New(
	catalog ports.Catalog,
	store ports.ArtworkStore,
	resolver ports.ArtworkResolver,
	table *refs.Table,
	logger ports.Logger,
	tracer ports.Tracer,
	cfg Config,
) (*Session, error) {
	s := &Session{
		catalog:  catalog,
		store:    store,
		resolver: resolver,
		table:    table,
		logger:   logger,
		state:    loader.NewState(),
		grid:     cfg.Grid,
		updates:  make(chan struct{}, 1),
		sortKey:  library.SortByName,
	}

	opts := []loader.Option{
		loader.WithChunkSize(cfg.Grid.ChunkSize),
		loader.WithDelay(cfg.Grid.ChunkDelay),
		loader.WithNotify(func([]domain.ItemID) { s.signal() }),
		loader.WithDiscard(s.revoke),
	}
	s.loader = loader.New(resolver, s.state, logger, tracer, append(opts, cfg.Loader...)...)
	s.pager = pager.New(s.loader, s.state, pager.WithPageSize(cfg.Grid.PageSize))

	geo := cfg.Geometry
	geo.ItemCount = 0
	geo.BufferRows = cfg.Grid.BufferRows
	w, err := viewport.NewWindower(geo, func(domain.VisibleRange) { s.signal() })
	if err != nil {
		return nil, err
	}
	s.windower = w
	return s, nil
}

// Updates delivers a value whenever artwork was merged or the window moved.
// Bursts collapse into one pending value.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

func (s *Session) signal() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

// Load fetches the item list of user. On failure the list is emptied and
// the error returned; there is no retry.
func (s *Session) Load(ctx context.Context, user domain.User) error {
	items, err := s.catalog.GetItems(ctx, user)
	if err != nil {
		s.logger.Error(err, "user", user.Name)
		items = nil
	}

	for _, ref := range s.state.Clear() {
		s.revoke(ref)
	}
	s.pager.Reset()

	s.mu.Lock()
	s.user = user
	s.all = items
	s.view = library.View(items, s.query, s.sortKey)
	s.mu.Unlock()

	if syncErr := s.syncWindow(); syncErr != nil && err == nil {
		err = syncErr
	}
	s.signal()
	return err
}

// User returns the user whose list is loaded.
func (s *Session) User() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Items returns the filtered and sorted list.
func (s *Session) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.view)
}

// ItemsBetween returns the items of the list in [start, end), clamped to its bounds.
func (s *Session) ItemsBetween(start, end int) []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	end = min(max(end, 0), len(s.view))
	start = min(max(start, 0), end)
	return slices.Clone(s.view[start:end])
}

// Len returns the number of items after filtering.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.view)
}

// Total returns the number of items before filtering.
func (s *Session) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.all)
}

// Query returns the active filter.
func (s *Session) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SortKey returns the active sort order.
func (s *Session) SortKey() library.SortKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortKey
}

// SetQuery filters the list.
func (s *Session) SetQuery(query string) error {
	s.mu.Lock()
	s.query = query
	s.view = library.View(s.all, query, s.sortKey)
	s.mu.Unlock()
	return s.syncWindow()
}

// SetSort orders the list by key.
func (s *Session) SetSort(key library.SortKey) error {
	s.mu.Lock()
	s.sortKey = key
	s.view = library.View(s.all, s.query, key)
	s.mu.Unlock()
	return s.syncWindow()
}

// Revealed returns how many items of the list the pager has revealed.
func (s *Session) Revealed() int {
	s.mu.RLock()
	n := len(s.view)
	s.mu.RUnlock()
	return s.pager.Visible(n)
}

// Paging reports whether a page request is underway.
func (s *Session) Paging() bool {
	return s.pager.Loading()
}

// VisibleRange returns the materialized index range of the list.
func (s *Session) VisibleRange() domain.VisibleRange {
	rng := s.windower.Range()
	n := s.Revealed()
	rng.End = min(rng.End, n)
	rng.Start = min(rng.Start, rng.End)
	return rng
}

// Materialized returns the items inside the visible range.
func (s *Session) Materialized() []domain.Item {
	rng := s.VisibleRange()
	s.mu.RLock()
	defer s.mu.RUnlock()
	end := min(rng.End, len(s.view))
	start := min(rng.Start, end)
	return slices.Clone(s.view[start:end])
}

// Geometry returns the current viewport geometry.
func (s *Session) Geometry() viewport.Geometry {
	return s.windower.Geometry()
}

// ArtworkByItemID returns a copy of the loaded references.
func (s *Session) ArtworkByItemID() map[domain.ItemID]domain.ImageRef {
	artwork, _ := s.state.Snapshot()
	return artwork
}

// LoadStates returns a copy of the per-item load states.
func (s *Session) LoadStates() map[domain.ItemID]domain.LoadState {
	_, states := s.state.Snapshot()
	return states
}

// Status returns the load state of id.
func (s *Session) Status(id domain.ItemID) domain.LoadState {
	return s.state.Status(id)
}

// Artwork returns the bytes loaded for id, if any. Remote references carry no bytes.
func (s *Session) Artwork(id domain.ItemID) (domain.ImageRef, []byte, bool) {
	ref, ok := s.state.Ref(id)
	if !ok {
		return domain.ImageRef{}, nil, false
	}
	if ref.IsRemote() {
		return ref, nil, true
	}
	data, err := s.table.Bytes(ref.Handle)
	if err != nil {
		return ref, nil, false
	}
	return ref, data, true
}

// Scroll records a scroll offset. Recomputation is coalesced.
func (s *Session) Scroll(offset int) {
	s.windower.Scroll(offset)
}

// FlushScroll applies a pending scroll offset now.
func (s *Session) FlushScroll() {
	s.windower.Flush()
}

// Resize applies new viewport dimensions.
func (s *Session) Resize(viewportHeight, columns int) error {
	return s.windower.Resize(viewportHeight, columns)
}

// RequestBatch loads artwork for ids.
func (s *Session) RequestBatch(ctx context.Context, ids []domain.ItemID) error {
	return s.loader.LoadBatch(ctx, ids)
}

// LoadVisible releases artwork outside the retained window and loads
// artwork for the materialized items.
func (s *Session) LoadVisible(ctx context.Context) error {
	s.Retire()
	return s.RequestBatch(ctx, domain.IDs(s.Materialized()))
}

// RequestMore reveals the next page once the scroll position is near the end.
func (s *Session) RequestMore(ctx context.Context) (bool, error) {
	geo := s.windower.Geometry()
	height := viewport.TotalHeight(geo.ItemCount, geo.Columns, geo.RowHeight)
	if !pager.ShouldLoadMore(geo.ScrollOffset, height, geo.ViewportHeight, s.grid.ScrollThreshold) {
		return false, nil
	}

	s.mu.RLock()
	view := s.view
	s.mu.RUnlock()

	grew, err := s.pager.RequestMore(ctx, view)
	if err != nil || !grew {
		return grew, err
	}
	if err := s.syncWindow(); err != nil {
		return grew, err
	}
	s.signal()
	return true, nil
}

// Refresh replaces the artwork of id with a fresh lookup.
func (s *Session) Refresh(ctx context.Context, id domain.ItemID) *domain.ImageRef {
	ref := s.resolver.Refresh(ctx, id)
	s.Release([]domain.ItemID{id})
	s.state.Claim([]domain.ItemID{id})
	if !s.state.Complete(id, ref) && ref != nil {
		s.revoke(*ref)
	}
	s.signal()
	return ref
}

// Release forgets ids and revokes their references.
func (s *Session) Release(ids []domain.ItemID) {
	for _, ref := range s.state.Release(ids) {
		s.revoke(ref)
	}
}

// Retire releases artwork of items outside the visible range plus one page
// on either side. Items that are still loading are kept.
func (s *Session) Retire() int {
	rng := s.VisibleRange()
	margin := s.grid.PageSize

	s.mu.RLock()
	index := make(map[domain.ItemID]int, len(s.view))
	for i, it := range s.view {
		index[it.ID] = i
	}
	s.mu.RUnlock()

	var retire []domain.ItemID
	for _, id := range s.state.Tracked() {
		if s.state.Status(id) == domain.LoadLoading {
			continue
		}
		i, ok := index[id]
		if ok && i >= rng.Start-margin && i < rng.End+margin {
			continue
		}
		retire = append(retire, id)
	}
	if len(retire) > 0 {
		s.Release(retire)
		s.logger.Debug("released artwork outside the window", "count", len(retire))
	}
	return len(retire)
}

// ClearCache empties the artwork store and forgets all loaded artwork.
func (s *Session) ClearCache() (int, error) {
	n, err := s.store.Clear()
	if err != nil {
		return 0, err
	}
	for _, ref := range s.state.Clear() {
		s.revoke(ref)
	}
	s.logger.Info("artwork cache cleared", "entries", n)
	s.signal()
	return n, nil
}

// Close releases all artwork and stops pending scroll handling.
func (s *Session) Close() {
	s.windower.Close()
	for _, ref := range s.state.Clear() {
		s.revoke(ref)
	}
}

func (s *Session) syncWindow() error {
	return s.windower.SetItemCount(s.Revealed())
}

func (s *Session) revoke(ref domain.ImageRef) {
	if err := s.table.RevokeRef(ref); err != nil {
		s.logger.Debug("artwork reference already released", "ref", ref.String())
	}
}
