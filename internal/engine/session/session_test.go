package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports/mocks"
	"go.trai.ch/shelf/internal/engine/library"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/shelf/internal/engine/session"
	"go.trai.ch/shelf/internal/engine/viewport"
	"go.uber.org/mock/gomock"
)

var alice = domain.User{Name: "alice", SteamID: "1", APIKey: "k"}

type fixture struct {
	catalog  *mocks.MockCatalog
	store    *mocks.MockArtworkStore
	resolver *mocks.MockArtworkResolver
	logger   *mocks.MockLogger
	table    *refs.Table
	sess     *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		catalog:  mocks.NewMockCatalog(ctrl),
		store:    mocks.NewMockArtworkStore(ctrl),
		resolver: mocks.NewMockArtworkResolver(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		table:    refs.NewTable(),
	}
	f.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.ItemID) *domain.ImageRef {
			ref := f.table.Issue(id, []byte("art-"+id.String()))
			return &ref
		}).AnyTimes()

	grid := domain.DefaultGridConfig()
	grid.ChunkDelay = 0

	sess, err := session.New(f.catalog, f.store, f.resolver, f.table, f.logger, telemetry.NewNoOpTracer(), session.Config{
		Grid: grid,
		Geometry: viewport.Geometry{
			ViewportHeight: 800,
			RowHeight:      domain.RowHeight,
			Columns:        5,
		},
	})
	require.NoError(t, err)
	t.Cleanup(sess.Close)

	f.sess = sess
	return f
}

func games(n int) []domain.Item {
	out := make([]domain.Item, n)
	for i := range out {
		out[i] = domain.Item{ID: domain.ItemID(i + 1), DisplayName: fmt.Sprintf("Game %03d", i+1)}
	}
	return out
}

func (f *fixture) load(t *testing.T, n int) {
	t.Helper()
	f.catalog.EXPECT().GetItems(gomock.Any(), alice).Return(games(n), nil)
	require.NoError(t, f.sess.Load(context.Background(), alice))
}

func TestSession_Load(t *testing.T) {
	f := newFixture(t)
	f.load(t, 200)

	assert.Len(t, f.sess.Items(), 200)
	assert.Equal(t, 200, f.sess.Total())
	assert.Equal(t, alice, f.sess.User())
	assert.Equal(t, 48, f.sess.Revealed())
	assert.Equal(t, domain.VisibleRange{Start: 0, End: 40}, f.sess.VisibleRange())
	assert.Len(t, f.sess.Materialized(), 40)
	assert.Empty(t, f.sess.ArtworkByItemID())

	select {
	case <-f.sess.Updates():
	default:
		t.Fatal("expected an update after loading")
	}
}

func TestSession_LoadFailureYieldsEmptyList(t *testing.T) {
	f := newFixture(t)
	f.load(t, 10)

	f.catalog.EXPECT().GetItems(gomock.Any(), alice).Return(nil, domain.ErrAuthFailed)
	f.logger.EXPECT().Error(gomock.Any(), gomock.Any())

	err := f.sess.Load(context.Background(), alice)
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Empty(t, f.sess.Items())
	assert.Equal(t, domain.VisibleRange{}, f.sess.VisibleRange())
}

func TestSession_LoadVisible(t *testing.T) {
	f := newFixture(t)
	f.load(t, 200)

	require.NoError(t, f.sess.LoadVisible(context.Background()))

	states := f.sess.LoadStates()
	assert.Len(t, states, 40)
	for _, it := range f.sess.Materialized() {
		assert.Equal(t, domain.LoadCached, states[it.ID])
	}
	assert.Equal(t, 40, f.table.Live())

	ref, data, ok := f.sess.Artwork(1)
	require.True(t, ok)
	assert.False(t, ref.IsRemote())
	assert.Equal(t, []byte("art-1"), data)

	require.NoError(t, f.sess.LoadVisible(context.Background()))
	assert.Equal(t, 40, f.table.Live(), "loaded items are not requested again")
}

func TestSession_RequestMore(t *testing.T) {
	f := newFixture(t)
	f.load(t, 200)

	grew, err := f.sess.RequestMore(context.Background())
	require.NoError(t, err)
	assert.False(t, grew, "far from the end nothing is revealed")

	f.sess.Scroll(2400)
	f.sess.FlushScroll()

	grew, err = f.sess.RequestMore(context.Background())
	require.NoError(t, err)
	assert.True(t, grew)
	assert.Equal(t, 96, f.sess.Revealed())

	states := f.sess.LoadStates()
	for id := domain.ItemID(49); id <= 96; id++ {
		assert.Equal(t, domain.LoadCached, states[id], "revealed items are prefetched")
	}
}

func TestSession_RetireBoundsMemory(t *testing.T) {
	f := newFixture(t)
	f.load(t, 200)
	ctx := context.Background()

	require.NoError(t, f.sess.LoadVisible(ctx))

	for f.sess.Revealed() < 200 {
		f.sess.Scroll(1_000_000)
		f.sess.FlushScroll()
		grew, err := f.sess.RequestMore(ctx)
		require.NoError(t, err)
		require.True(t, grew)
	}

	assert.Equal(t, 40+152, f.table.Live())

	require.NoError(t, f.sess.LoadVisible(ctx))
	rng := f.sess.VisibleRange()
	assert.Equal(t, 200, rng.End)
	// The window is [165, 200); one page of 48 is retained before it.
	assert.Equal(t, 83, f.table.Live())

	f.sess.Scroll(0)
	f.sess.FlushScroll()
	require.NoError(t, f.sess.LoadVisible(ctx))
	assert.Equal(t, domain.VisibleRange{Start: 0, End: 40}, f.sess.VisibleRange())
	assert.Equal(t, 40, f.table.Live())
	assert.Equal(t, domain.LoadUnrequested, f.sess.Status(200))
}

func TestSession_QueryAndSort(t *testing.T) {
	f := newFixture(t)
	f.load(t, 200)

	require.NoError(t, f.sess.SetQuery("game 19"))
	items := f.sess.Items()
	require.Len(t, items, 20)
	assert.Equal(t, 20, f.sess.Len())
	assert.Equal(t, "game 19", f.sess.Query())
	assert.Equal(t, domain.VisibleRange{Start: 0, End: 20}, f.sess.VisibleRange())

	require.NoError(t, f.sess.SetSort(library.SortByPlaytime))
	assert.Equal(t, library.SortByPlaytime, f.sess.SortKey())

	require.NoError(t, f.sess.SetQuery(""))
	assert.Len(t, f.sess.Items(), 200)
}

func TestSession_ItemsBetween(t *testing.T) {
	f := newFixture(t)
	f.load(t, 10)

	got := f.sess.ItemsBetween(8, 20)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ItemID(9), got[0].ID)
	assert.Empty(t, f.sess.ItemsBetween(-5, 0))
	assert.Empty(t, f.sess.ItemsBetween(7, 3))
}

func TestSession_QueryReleasesFilteredArtwork(t *testing.T) {
	f := newFixture(t)
	f.load(t, 100)
	ctx := context.Background()

	require.NoError(t, f.sess.LoadVisible(ctx))
	require.Equal(t, 40, f.table.Live())

	require.NoError(t, f.sess.SetQuery("game 001"))
	require.NoError(t, f.sess.LoadVisible(ctx))
	assert.Equal(t, 1, f.table.Live())
}

func TestSession_Refresh(t *testing.T) {
	f := newFixture(t)
	f.load(t, 10)
	ctx := context.Background()

	require.NoError(t, f.sess.RequestBatch(ctx, []domain.ItemID{3}))
	old, _, ok := f.sess.Artwork(3)
	require.True(t, ok)

	f.resolver.EXPECT().Refresh(gomock.Any(), domain.ItemID(3)).
		Return(&domain.ImageRef{URL: "https://cdn.example/3.png"})

	ref := f.sess.Refresh(ctx, 3)
	require.NotNil(t, ref)

	got, data, ok := f.sess.Artwork(3)
	require.True(t, ok)
	assert.True(t, got.IsRemote())
	assert.Nil(t, data)

	_, err := f.table.Bytes(old.Handle)
	require.ErrorIs(t, err, domain.ErrRefRevoked)
}

func TestSession_RefreshUnavailable(t *testing.T) {
	f := newFixture(t)
	f.load(t, 10)

	f.resolver.EXPECT().Refresh(gomock.Any(), domain.ItemID(4)).Return(nil)

	assert.Nil(t, f.sess.Refresh(context.Background(), 4))
	assert.Equal(t, domain.LoadUnavailable, f.sess.Status(4))
}

func TestSession_ClearCache(t *testing.T) {
	f := newFixture(t)
	f.load(t, 100)
	ctx := context.Background()
	require.NoError(t, f.sess.LoadVisible(ctx))

	f.store.EXPECT().Clear().Return(57, nil)

	n, err := f.sess.ClearCache()
	require.NoError(t, err)
	assert.Equal(t, 57, n)
	assert.Zero(t, f.table.Live())
	assert.Empty(t, f.sess.LoadStates())
}

func TestSession_ClearCacheFailure(t *testing.T) {
	f := newFixture(t)
	f.load(t, 100)
	require.NoError(t, f.sess.LoadVisible(context.Background()))

	f.store.EXPECT().Clear().Return(0, errors.New("disk full"))

	_, err := f.sess.ClearCache()
	require.Error(t, err)
	assert.Equal(t, 40, f.table.Live(), "loaded artwork stays when the store cannot be cleared")
}

func TestSession_Close(t *testing.T) {
	f := newFixture(t)
	f.load(t, 100)
	require.NoError(t, f.sess.LoadVisible(context.Background()))

	f.sess.Close()
	assert.Zero(t, f.table.Live())
}

func TestSession_Resize(t *testing.T) {
	f := newFixture(t)
	f.load(t, 200)

	require.NoError(t, f.sess.Resize(800, 2))
	assert.Equal(t, domain.VisibleRange{Start: 0, End: 16}, f.sess.VisibleRange())

	err := f.sess.Resize(800, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidGeometry.Error())
}
