package store

import (
	"context"
	"errors"
)

// Slots the client keeps between page loads. Both are cleared explicitly by
// the session and checkout flows, never by a TTL.
const (
	KeyToken         = "token"
	KeyCheckoutItems = "checkout_items"
)

// Store is the durable per-browser key/value storage.
// Consumers define this interface, not the backend implementations.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrKeyNotFound = errors.New("key not found")
