package api

import (
	"context"
	"net/http"
)

// HeaderIdempotencyKey deduplicates retried order submissions server-side.
const HeaderIdempotencyKey = "X-Idempotency-Key"

type orderPayload struct {
	OrderItems []OrderItemRef `json:"order_items"`
}

// CreateOrder submits the order lines. The caller supplies one idempotency key
// per logical checkout so a retry after a failure cannot double-order.
func (c *Client) CreateOrder(ctx context.Context, items []OrderItemRef, idempotencyKey string) (*Order, error) {
	headers := map[string]string{HeaderIdempotencyKey: idempotencyKey}
	var out Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, headers, orderPayload{OrderItems: items}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders fetches every order for the current session, newest nesting
// included. No pagination; the full set is expected to fit in memory.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
