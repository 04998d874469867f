package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/cart"
	"github.com/ghrd1/shop-front/internal/catalog"
	"github.com/ghrd1/shop-front/internal/money"
)

// ShopHandler serves the browse view: catalog listing plus the local cart.
type ShopHandler struct {
	catalog *catalog.Browser
	cart    *cart.Engine
}

func NewShopHandler(browser *catalog.Browser, engine *cart.Engine) *ShopHandler {
	return &ShopHandler{catalog: browser, cart: engine}
}

type cartViewDTO struct {
	Lines []cart.Line `json:"lines"`
	Total string      `json:"total"`
}

func (h *ShopHandler) cartView() cartViewDTO {
	return cartViewDTO{Lines: h.cart.Lines(), Total: money.Format(h.cart.Total())}
}

func (h *ShopHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var err error
	if query == "" {
		err = h.catalog.Load(r.Context())
	} else {
		err = h.catalog.Search(r.Context(), query)
	}
	if err != nil {
		writeError(w, err, "Failed to load items")
		return
	}

	respondJSON(w, http.StatusOK, h.catalog.Items())
}

func (h *ShopHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *ShopHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item api.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if item.ID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "id must be positive")
		return
	}

	h.cart.AddItem(item)
	respondJSON(w, http.StatusCreated, h.cartView())
}

type updateQuantityDTO struct {
	Quantity int `json:"quantity"`
}

func (h *ShopHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
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

	// qty <= 0 removes the line, same as the remove button.
	h.cart.SetQuantity(itemID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartView())
}

func (h *ShopHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	h.cart.RemoveItem(itemID)
	respondJSON(w, http.StatusOK, h.cartView())
}

// BeginCheckout hands the cart snapshot to the checkout view through the
// persisted slot.
func (h *ShopHandler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	if _, err := h.cart.ExportForCheckout(r.Context()); err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "empty_cart", "your cart is empty")
			return
		}
		writeError(w, err, "Failed to start checkout")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"redirect": "/checkout"})
}

func itemIDParam(r *http.Request) (int64, error) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		return 0, errors.New("invalid item_id")
	}
	return itemID, nil
}
