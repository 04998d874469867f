package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/money"
	"github.com/ghrd1/shop-front/internal/orders"
)

type OrdersHandler struct {
	history *orders.History
}

func NewOrdersHandler(history *orders.History) *OrdersHandler {
	return &OrdersHandler{history: history}
}

type ordersSummaryDTO struct {
	Orders     []api.Order `json:"orders"`
	Count      int         `json:"count"`
	TotalSpent string      `json:"total_spent"`
	LastOrder  *time.Time  `json:"last_order_at,omitempty"`
	SelectedID *int64      `json:"selected_id,omitempty"`
}

type orderLineDTO struct {
	ID       int64  `json:"id"`
	ItemID   int64  `json:"item_id"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name,omitempty"`
	// Subtotal is null when the catalog item no longer exists.
	Subtotal *string `json:"subtotal"`
}

type orderDetailDTO struct {
	Order *api.Order     `json:"order"`
	Lines []orderLineDTO `json:"lines,omitempty"`
}

// List reloads the order history and renders the summary aggregates.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Load(r.Context()); err != nil {
		writeError(w, err, "Failed to load orders")
		return
	}

	summary := ordersSummaryDTO{
		Orders:     h.history.Orders(),
		Count:      h.history.Count(),
		TotalSpent: money.Format(h.history.TotalSpent()),
	}
	if latest, ok := h.history.MostRecent(); ok {
		summary.LastOrder = &latest.CreatedAt
	}
	if selected, ok := h.history.Selected(); ok {
		summary.SelectedID = &selected.ID
	}

	respondJSON(w, http.StatusOK, summary)
}

// Detail selects an order and renders its lines. An id not in the loaded set
// yields an empty detail, not an error.
func (h *OrdersHandler) Detail(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	h.history.Select(orderID)

	selected, ok := h.history.Selected()
	if !ok {
		respondJSON(w, http.StatusOK, orderDetailDTO{})
		return
	}

	lines := make([]orderLineDTO, 0, len(selected.Lines))
	for _, line := range selected.Lines {
		dto := orderLineDTO{
			ID:       line.ID,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if line.Item != nil {
			dto.Name = line.Item.Name
		}
		if subtotal, ok := orders.LineSubtotal(line); ok {
			formatted := money.Format(subtotal)
			dto.Subtotal = &formatted
		}
		lines = append(lines, dto)
	}

	respondJSON(w, http.StatusOK, orderDetailDTO{Order: &selected, Lines: lines})
}
