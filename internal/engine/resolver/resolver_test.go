package resolver_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/adapters/telemetry"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports/mocks"
	"go.trai.ch/shelf/internal/engine/refs"
	"go.trai.ch/shelf/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store  *mocks.MockArtworkStore
	source *mocks.MockCandidateSource
	logger *mocks.MockLogger
	table  *refs.Table
	res    *resolver.Resolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		store:  mocks.NewMockArtworkStore(ctrl),
		source: mocks.NewMockCandidateSource(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		table:  refs.NewTable(),
	}
	f.res = resolver.New(f.store, f.source, f.table, f.logger, telemetry.NewNoOpTracer())
	return f
}

func (f *fixture) quietLogs() {
	f.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
}

var portrait = domain.GridCandidate{
	ID:     "g1",
	Style:  domain.StyleAlternate,
	Width:  600,
	Height: 900,
	URL:    "https://cdn.example/g1.png",
	Score:  3,
}

func TestResolver_StoreHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(domain.ItemID(620)).Return([]byte("cached"), nil)

	ref := f.res.Resolve(ctx, 620)
	require.NotNil(t, ref)
	assert.False(t, ref.IsRemote())

	data, err := f.table.Bytes(ref.Handle)
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), data)
}

func TestResolver_StoreMissFetchesAndStores(t *testing.T) {
	f := newFixture(t)
	f.quietLogs()
	ctx := context.Background()

	landscape := domain.GridCandidate{ID: "g2", Style: domain.StyleMaterial, Width: 920, Height: 430, URL: "https://cdn.example/g2.png", Score: 10}

	gomock.InOrder(
		f.store.EXPECT().Get(domain.ItemID(620)).Return(nil, nil),
		f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(620)).Return([]domain.GridCandidate{landscape, portrait}, nil),
		f.store.EXPECT().Put(gomock.Any(), domain.ItemID(620), portrait.URL).Return([]byte("fresh"), nil),
	)

	ref := f.res.Resolve(ctx, 620)
	require.NotNil(t, ref)

	data, err := f.table.Bytes(ref.Handle)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), data)
}

func TestResolver_DownloadFailureFallsBackToRemoteURL(t *testing.T) {
	f := newFixture(t)
	f.quietLogs()
	ctx := context.Background()

	f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, nil)
	f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return([]domain.GridCandidate{portrait}, nil)
	f.store.EXPECT().Put(gomock.Any(), domain.ItemID(1), portrait.URL).Return(nil, nil)

	ref := f.res.Resolve(ctx, 1)
	require.NotNil(t, ref)
	assert.True(t, ref.IsRemote())
	assert.Equal(t, portrait.URL, ref.URL)
	assert.Equal(t, 0, f.table.Live())
}

func TestResolver_StoreWriteErrorFallsBackToRemoteURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, nil)
	f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return([]domain.GridCandidate{portrait}, nil)
	f.store.EXPECT().Put(gomock.Any(), domain.ItemID(1), portrait.URL).Return(nil, domain.ErrStoreWriteFailed)
	f.logger.EXPECT().Warn("artwork store write failed", gomock.Any()).Times(1)

	ref := f.res.Resolve(ctx, 1)
	require.NotNil(t, ref)
	assert.Equal(t, portrait.URL, ref.URL)
}

func TestResolver_StoreReadErrorStillQueriesService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, domain.ErrStoreReadFailed)
	f.logger.EXPECT().Warn("artwork store read failed", gomock.Any()).Times(1)
	f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return([]domain.GridCandidate{portrait}, nil)
	f.store.EXPECT().Put(gomock.Any(), domain.ItemID(1), portrait.URL).Return([]byte("x"), nil)

	ref := f.res.Resolve(ctx, 1)
	require.NotNil(t, ref)
	assert.NotEmpty(t, ref.Handle)
}

func TestResolver_ServiceFailureYieldsNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, nil)
	f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return(nil, errors.New("connection reset"))
	f.logger.EXPECT().Warn("artwork candidates unavailable", gomock.Any()).Times(1)

	assert.Nil(t, f.res.Resolve(ctx, 1))
}

func TestResolver_NoCandidatesYieldsNil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, nil)
	f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return(nil, nil)
	f.logger.EXPECT().Debug("no artwork candidates", gomock.Any()).Times(1)

	assert.Nil(t, f.res.Resolve(ctx, 1))
}

func TestResolver_MissingCredentialWarnsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(3)
	f.source.EXPECT().GetCandidates(gomock.Any(), gomock.Any()).Return(nil, domain.ErrMissingCredential).Times(3)
	f.logger.EXPECT().Warn("artwork service credential is not configured, skipping lookups").Times(1)

	assert.Nil(t, f.res.Resolve(ctx, 1))
	assert.Nil(t, f.res.Resolve(ctx, 2))
	assert.Nil(t, f.res.Resolve(ctx, 3))
}

func TestResolver_SetCredentialRearmsWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(2)
	f.source.EXPECT().GetCandidates(gomock.Any(), gomock.Any()).Return(nil, domain.ErrMissingCredential).Times(2)
	f.source.EXPECT().SetCredential("").Times(1)
	f.logger.EXPECT().Warn("artwork service credential is not configured, skipping lookups").Times(2)

	assert.Nil(t, f.res.Resolve(ctx, 1))
	f.res.SetCredential("")
	assert.Nil(t, f.res.Resolve(ctx, 2))
}

func TestResolver_RefreshSkipsStoreLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(9)).Return([]domain.GridCandidate{portrait}, nil)
	f.store.EXPECT().Put(gomock.Any(), domain.ItemID(9), portrait.URL).Return([]byte("new"), nil)

	ref := f.res.Refresh(ctx, 9)
	require.NotNil(t, ref)

	data, err := f.table.Bytes(ref.Handle)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestResolver_Prime(t *testing.T) {
	t.Run("already stored", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Has(domain.ItemID(1)).Return(true, nil)

		assert.True(t, f.res.Prime(context.Background(), 1))
		assert.Equal(t, 0, f.table.Live())
	})

	t.Run("fetches and stores", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Has(domain.ItemID(1)).Return(false, nil)
		f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, nil)
		f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return([]domain.GridCandidate{portrait}, nil)
		f.store.EXPECT().Put(gomock.Any(), domain.ItemID(1), portrait.URL).Return([]byte("x"), nil)

		assert.True(t, f.res.Prime(context.Background(), 1))
		assert.Equal(t, 0, f.table.Live(), "priming must not issue references")
	})

	t.Run("download failure", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Has(domain.ItemID(1)).Return(false, nil)
		f.store.EXPECT().Get(domain.ItemID(1)).Return(nil, nil)
		f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(1)).Return([]domain.GridCandidate{portrait}, nil)
		f.store.EXPECT().Put(gomock.Any(), domain.ItemID(1), portrait.URL).Return(nil, nil)

		assert.False(t, f.res.Prime(context.Background(), 1))
	})
}

func TestResolver_ConcurrentCallersGetOwnReferences(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Get(domain.ItemID(5)).Return([]byte("img"), nil).MinTimes(1).MaxTimes(8)

	refsOut := make([]*domain.ImageRef, 8)
	var wg sync.WaitGroup
	for i := range refsOut {
		wg.Go(func() {
			refsOut[i] = f.res.Resolve(context.Background(), 5)
		})
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, ref := range refsOut {
		require.NotNil(t, ref)
		assert.False(t, seen[ref.Handle], "handles must not be shared")
		seen[ref.Handle] = true
	}
	assert.Equal(t, 8, f.table.Live())
}

func TestResolver_CanceledCallerDoesNotFailJoinedCallers(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.quietLogs()

		release := make(chan struct{})
		f.store.EXPECT().Get(domain.ItemID(9)).Return(nil, nil).Times(1)
		f.source.EXPECT().GetCandidates(gomock.Any(), domain.ItemID(9)).DoAndReturn(
			func(ctx context.Context, _ domain.ItemID) ([]domain.GridCandidate, error) {
				<-release
				return []domain.GridCandidate{portrait}, ctx.Err()
			}).Times(1)
		f.store.EXPECT().Put(gomock.Any(), domain.ItemID(9), portrait.URL).Return([]byte("fresh"), nil).Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		var first, second *domain.ImageRef
		var wg sync.WaitGroup

		wg.Go(func() { first = f.res.Resolve(ctx, 9) })
		synctest.Wait()
		wg.Go(func() { second = f.res.Resolve(context.Background(), 9) })
		synctest.Wait()

		cancel()
		synctest.Wait()
		close(release)
		wg.Wait()

		assert.Nil(t, first)
		require.NotNil(t, second)
		data, err := f.table.Bytes(second.Handle)
		require.NoError(t, err)
		assert.Equal(t, []byte("fresh"), data)
	})
}
