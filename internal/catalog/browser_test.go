package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghrd1/shop-front/internal/api"
)

type mockItemsAPI struct {
	byQuery map[string][]api.Item
	err     error
	// When set, a request for the named query signals entered and blocks
	// until released.
	blockQuery string
	entered    chan struct{}
	release    chan struct{}
}

func (m *mockItemsAPI) ListItems(_ context.Context, query string) ([]api.Item, error) {
	if m.release != nil && query == m.blockQuery {
		m.entered <- struct{}{}
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.byQuery[query], nil
}

func TestLoad(t *testing.T) {
	mock := &mockItemsAPI{byQuery: map[string][]api.Item{
		"": {{ID: 1, Name: "Mug", Price: "9.99"}},
	}}
	b := NewBrowser(mock)

	require.NoError(t, b.Load(context.Background()))

	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Mug", items[0].Name)
}

func TestSearch_FilteredListing(t *testing.T) {
	mock := &mockItemsAPI{byQuery: map[string][]api.Item{
		"":    {{ID: 1}, {ID: 2}},
		"mug": {{ID: 1}},
	}}
	b := NewBrowser(mock)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	require.NoError(t, b.Search(ctx, "mug"))

	assert.Len(t, b.Items(), 1)
}

func TestSearch_Error(t *testing.T) {
	b := NewBrowser(&mockItemsAPI{err: errors.New("boom")})
	assert.Error(t, b.Search(context.Background(), "mug"))
}

// A slow first request resolving after a faster second one must not clobber
// the newer listing.
func TestFetch_StaleResponseDiscarded(t *testing.T) {
	mock := &mockItemsAPI{
		byQuery: map[string][]api.Item{
			"slow": {{ID: 1, Name: "Stale"}},
			"fast": {{ID: 2, Name: "Fresh"}},
		},
		blockQuery: "slow",
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	b := NewBrowser(mock)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = b.Search(ctx, "slow")
	}()
	<-mock.entered // the slow request is in flight

	require.NoError(t, b.Search(ctx, "fast"))
	close(mock.release)
	wg.Wait()

	items := b.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Fresh", items[0].Name)
}

// An error from a superseded request is discarded along with its result.
func TestFetch_StaleErrorDiscarded(t *testing.T) {
	mock := &mockItemsAPI{
		byQuery:    map[string][]api.Item{"fast": {{ID: 2}}},
		blockQuery: "slow",
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	b := NewBrowser(mock)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- b.Search(ctx, "slow")
	}()
	<-mock.entered

	require.NoError(t, b.Search(ctx, "fast"))
	mock.err = errors.New("boom")
	close(mock.release)

	assert.NoError(t, <-done)
	assert.Len(t, b.Items(), 1)
}
