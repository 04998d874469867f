package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/cart"
	"github.com/ghrd1/shop-front/internal/checkout"
	"github.com/ghrd1/shop-front/internal/money"
)

type CheckoutHandler struct {
	coordinator *checkout.Coordinator
	cart        *cart.Engine
	submits     singleflight.Group
	log         logrus.FieldLogger
}

func NewCheckoutHandler(coordinator *checkout.Coordinator, engine *cart.Engine, log logrus.FieldLogger) *CheckoutHandler {
	return &CheckoutHandler{coordinator: coordinator, cart: engine, log: log}
}

type checkoutViewDTO struct {
	Lines []cart.Line `json:"lines"`
	Total string      `json:"total"`
}

func (h *CheckoutHandler) view() checkoutViewDTO {
	return checkoutViewDTO{
		Lines: h.coordinator.Lines(),
		Total: money.Format(h.coordinator.Total()),
	}
}

// View loads the handoff slot and renders the in-progress checkout. An absent
// slot is an empty checkout.
func (h *CheckoutHandler) View(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.Load(r.Context()); err != nil {
		writeError(w, err, "Failed to load checkout")
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}

// ensureLoaded recovers the coordinator state from the slot when a mutation
// arrives before any view, e.g. after a process restart mid-checkout.
func (h *CheckoutHandler) ensureLoaded(r *http.Request) error {
	if len(h.coordinator.Lines()) > 0 {
		return nil
	}
	return h.coordinator.Load(r.Context())
}

func (h *CheckoutHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	var req updateQuantityDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.ensureLoaded(r); err != nil {
		writeError(w, err, "Failed to load checkout")
		return
	}
	if err := h.coordinator.UpdateLineQuantity(r.Context(), itemID, req.Quantity); err != nil {
		writeError(w, err, "Failed to update checkout")
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CheckoutHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	if err := h.ensureLoaded(r); err != nil {
		writeError(w, err, "Failed to load checkout")
		return
	}
	if err := h.coordinator.RemoveLine(r.Context(), itemID); err != nil {
		writeError(w, err, "Failed to update checkout")
		return
	}
	respondJSON(w, http.StatusOK, h.view())
}

// Submit places the order. Concurrent submissions collapse into one in-flight
// call; the coordinator itself is not re-entrant.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := h.ensureLoaded(r); err != nil {
		writeError(w, err, "Failed to load checkout")
		return
	}

	v, err, _ := h.submits.Do("submit", func() (interface{}, error) {
		return h.coordinator.Submit(r.Context())
	})
	if err != nil {
		if errors.Is(err, checkout.ErrNothingToSubmit) {
			respondError(w, http.StatusConflict, "empty_checkout", "your cart is empty")
			return
		}
		h.log.WithError(err).Warn("order submission failed")
		writeError(w, err, "Checkout failed")
		return
	}

	order := v.(*api.Order)
	// The purchased lines leave the cart with the order; only an explicit
	// failure keeps them around for a retry.
	h.cart.Clear()
	h.log.WithField("order_id", order.ID).Info("order placed")
	// The client shows the success state first and navigates after a beat.
	respondJSON(w, http.StatusCreated, map[string]any{
		"order":    order,
		"redirect": "/orders",
	})
}
