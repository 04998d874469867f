package orders

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/money"
)

// OrdersAPI is the slice of the remote API the history view consumes.
type OrdersAPI interface {
	ListOrders(ctx context.Context) ([]api.Order, error)
}

// History fetches and exposes the selectable order list. Read-only: orders
// are immutable once created. Aggregates are recomputed from the loaded set
// on every call, never cached separately.
type History struct {
	mu           sync.Mutex
	orders       []api.Order
	selectedID   int64
	hasSelection bool

	api OrdersAPI
}

func NewHistory(ordersAPI OrdersAPI) *History {
	return &History{api: ordersAPI}
}

// Load fetches the full order set. No pagination; the set is expected to fit
// in memory. The first order in server-returned order becomes the default
// selection unless one was already made.
func (h *History) Load(ctx context.Context) error {
	orders, err := h.api.ListOrders(ctx)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = orders
	if !h.hasSelection && len(orders) > 0 {
		h.selectedID = orders[0].ID
		h.hasSelection = true
	}
	return nil
}

// Orders returns a copy of the loaded set in server order.
func (h *History) Orders() []api.Order {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]api.Order, len(h.orders))
	copy(out, h.orders)
	return out
}

// Select marks an order as the selected one. Selecting an id that is not in
// the loaded set is allowed; Selected then reports no detail.
func (h *History) Select(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selectedID = id
	h.hasSelection = true
}

// Selected returns the currently selected order, or ok=false when the
// selection points at nothing in the loaded set.
func (h *History) Selected() (api.Order, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.hasSelection {
		return api.Order{}, false
	}
	for _, order := range h.orders {
		if order.ID == h.selectedID {
			return order, true
		}
	}
	return api.Order{}, false
}

func (h *History) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.orders)
}

// TotalSpent sums the server-computed amounts. An amount that fails to parse
// contributes zero; one bad record never poisons the aggregate.
func (h *History) TotalSpent() decimal.Decimal {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := decimal.Zero
	for _, order := range h.orders {
		total = total.Add(money.ParseOrZero(order.Amount))
	}
	return total
}

// MostRecent returns the order with the latest creation time.
func (h *History) MostRecent() (api.Order, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.orders) == 0 {
		return api.Order{}, false
	}
	latest := h.orders[0]
	for _, order := range h.orders[1:] {
		if order.CreatedAt.After(latest.CreatedAt) {
			latest = order
		}
	}
	return latest, true
}

// LineSubtotal computes quantity times the line item's unit price. When the
// catalog item was deleted (or its price is unreadable) the subtotal is
// unavailable: reported as ok=false, never as zero.
func LineSubtotal(line api.OrderLine) (decimal.Decimal, bool) {
	if line.Item == nil {
		return decimal.Zero, false
	}
	price, err := money.Parse(line.Item.Price)
	if err != nil {
		return decimal.Zero, false
	}
	return money.Subtotal(price, line.Quantity), true
}
