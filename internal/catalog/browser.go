package catalog

import (
	"context"
	"sync"

	"github.com/ghrd1/shop-front/internal/api"
)

// ItemsAPI is the slice of the remote API the browser consumes.
type ItemsAPI interface {
	ListItems(ctx context.Context, query string) ([]api.Item, error)
}

// Browser holds the item listing for the browse view. Rapid successive
// list/search requests can resolve out of order; each request carries a
// sequence number and a response that is no longer the newest is discarded,
// so a stale search can never overwrite a fresher one.
type Browser struct {
	mu      sync.Mutex
	items   []api.Item
	lastSeq uint64

	api ItemsAPI
}

func NewBrowser(itemsAPI ItemsAPI) *Browser {
	return &Browser{api: itemsAPI}
}

// Load fetches the unfiltered catalog.
func (b *Browser) Load(ctx context.Context) error {
	return b.fetch(ctx, "")
}

// Search fetches the catalog filtered by query. An empty query resets to the
// full listing.
func (b *Browser) Search(ctx context.Context, query string) error {
	return b.fetch(ctx, query)
}

func (b *Browser) fetch(ctx context.Context, query string) error {
	b.mu.Lock()
	b.lastSeq++
	seq := b.lastSeq
	b.mu.Unlock()

	items, err := b.api.ListItems(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.lastSeq {
		// A newer request was issued while this one was in flight.
		return nil
	}
	if err != nil {
		return err
	}
	b.items = items
	return nil
}

// Items returns a copy of the current listing.
func (b *Browser) Items() []api.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]api.Item, len(b.items))
	copy(out, b.items)
	return out
}
