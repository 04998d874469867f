package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/cart"
	"github.com/ghrd1/shop-front/internal/money"
	"github.com/ghrd1/shop-front/internal/store"
)

var ErrNothingToSubmit = errors.New("checkout is empty, nothing to submit")

// OrderAPI is the slice of the remote API the coordinator consumes.
type OrderAPI interface {
	CreateOrder(ctx context.Context, items []api.OrderItemRef, idempotencyKey string) (*api.Order, error)
}

// Coordinator converts a handed-off cart snapshot into an order submission.
// It works on its own copy of the lines and re-persists the slot after every
// mutation, so a reload mid-checkout resumes the edited state. Submit is not
// re-entrant; the caller keeps it single-flight.
type Coordinator struct {
	mu      sync.Mutex
	lines   []cart.Line
	idemKey string

	store store.Store
	api   OrderAPI
	log   logrus.FieldLogger
}

func NewCoordinator(st store.Store, orderAPI OrderAPI, log logrus.FieldLogger) *Coordinator {
	return &Coordinator{
		store:   st,
		api:     orderAPI,
		idemKey: uuid.NewString(),
		log:     log,
	}
}

// Load reads the handoff slot. An absent slot is an empty checkout, not an
// error. Each load mints a fresh idempotency key for the submission; retries
// after a failed submit reuse the same key.
func (c *Coordinator) Load(ctx context.Context) error {
	data, err := c.store.Get(ctx, store.KeyCheckoutItems)
	if errors.Is(err, store.ErrKeyNotFound) {
		c.reset(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read checkout slot: %w", err)
	}

	lines, err := cart.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("load checkout snapshot: %w", err)
	}
	c.reset(lines)
	return nil
}

// Lines returns a copy of the in-progress snapshot.
func (c *Coordinator) Lines() []cart.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]cart.Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total follows the same rule as the cart: recomputed fresh every call.
// A line whose price did not survive the handoff contributes zero.
func (c *Coordinator) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(money.Subtotal(money.ParseOrZero(line.UnitPrice), line.Quantity))
	}
	return total
}

// UpdateLineQuantity mutates the snapshot and persists it before returning,
// so every edit is durable before the next render. qty <= 0 removes the line.
func (c *Coordinator) UpdateLineQuantity(ctx context.Context, itemID int64, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.removeLocked(itemID)
	} else {
		for i := range c.lines {
			if c.lines[i].ItemID == itemID {
				c.lines[i].Quantity = qty
				break
			}
		}
	}
	return c.persistLocked(ctx)
}

// RemoveLine deletes a line and persists the snapshot.
func (c *Coordinator) RemoveLine(ctx context.Context, itemID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(itemID)
	return c.persistLocked(ctx)
}

// Submit maps the snapshot to the minimal line refs and creates the order.
// Strictly on success the handoff slot is cleared; on failure the snapshot
// stays intact for a user-initiated retry under the same idempotency key.
func (c *Coordinator) Submit(ctx context.Context) (*api.Order, error) {
	c.mu.Lock()
	refs := make([]api.OrderItemRef, 0, len(c.lines))
	for _, line := range c.lines {
		refs = append(refs, api.OrderItemRef{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	key := c.idemKey
	c.mu.Unlock()

	if len(refs) == 0 {
		return nil, ErrNothingToSubmit
	}

	order, err := c.api.CreateOrder(ctx, refs, key)
	if err != nil {
		return nil, err
	}

	if err := c.store.Delete(ctx, store.KeyCheckoutItems); err != nil {
		// The order exists; a stale slot only means checkout reopens populated.
		c.log.WithError(err).Warn("order created but checkout slot not cleared")
	}
	c.reset(nil)
	return order, nil
}

func (c *Coordinator) removeLocked(itemID int64) {
	for i, line := range c.lines {
		if line.ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Coordinator) persistLocked(ctx context.Context) error {
	data, err := cart.EncodeSnapshot(c.lines)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, store.KeyCheckoutItems, data); err != nil {
		return fmt.Errorf("write checkout slot: %w", err)
	}
	return nil
}

func (c *Coordinator) reset(lines []cart.Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = lines
	c.idemKey = uuid.NewString()
}
