package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/money"
	"github.com/ghrd1/shop-front/internal/store"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Line is one (item, quantity) entry. UnitPrice keeps the catalog's decimal
// string; display fields travel with the line so checkout can render without
// another catalog fetch.
type Line struct {
	ItemID      int64  `json:"item_id"`
	Quantity    int    `json:"quantity"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   string `json:"price"`
}

// Engine owns the in-progress cart. At most one line per item; no line ever
// holds quantity <= 0. Purely local until checkout; no network calls.
type Engine struct {
	mu    sync.Mutex
	lines []Line

	store store.Store
}

func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

// AddItem creates a line with quantity 1, or increments an existing line.
// Deliberately not idempotent: clicking add twice means quantity 2.
func (e *Engine) AddItem(item api.Item) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].ItemID == item.ID {
			e.lines[i].Quantity++
			return
		}
	}
	e.lines = append(e.lines, Line{
		ItemID:      item.ID,
		Quantity:    1,
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.Price,
	})
}

// SetQuantity sets a line's quantity; qty <= 0 removes the line. No upper
// bound is enforced here; the server is the authority on stock.
func (e *Engine) SetQuantity(itemID int64, qty int) {
	if qty <= 0 {
		e.RemoveItem(itemID)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.lines {
		if e.lines[i].ItemID == itemID {
			e.lines[i].Quantity = qty
			return
		}
	}
}

// RemoveItem deletes the line; no-op when absent.
func (e *Engine) RemoveItem(itemID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, line := range e.lines {
		if line.ItemID == itemID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the current line set in insertion order.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines) == 0
}

// Total is recomputed fresh from the line set on every call, never
// accumulated incrementally, so repeated mutations cannot drift the sum.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, line := range e.lines {
		total = total.Add(money.Subtotal(money.ParseOrZero(line.UnitPrice), line.Quantity))
	}
	return total
}

// ExportForCheckout writes the current line set into the handoff slot and
// returns the snapshot. The source cart is left untouched; the checkout view
// works on its own copy.
func (e *Engine) ExportForCheckout(ctx context.Context) ([]Line, error) {
	snapshot := e.Lines()
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	if err := e.store.Set(ctx, store.KeyCheckoutItems, data); err != nil {
		return nil, fmt.Errorf("write checkout slot: %w", err)
	}
	return snapshot, nil
}

// Clear drops every line, e.g. after a completed checkout.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = nil
}
