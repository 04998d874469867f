package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ghrd1/shop-front/internal/api"
)

// AdminHandler wraps the admin-only remote operations. Plain list/edit/delete
// passthroughs; all the interesting state lives server-side.
type AdminHandler struct {
	api *api.Client
}

func NewAdminHandler(client *api.Client) *AdminHandler {
	return &AdminHandler{api: client}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}

	var update api.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.api.UpdateUser(r.Context(), userID, update)
	if err != nil {
		writeError(w, err, "Failed to update user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "user_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a positive integer")
		return
	}

	if err := h.api.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, err, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var fields api.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	item, err := h.api.CreateItem(r.Context(), fields)
	if err != nil {
		writeError(w, err, "Failed to create item")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "item_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	var fields api.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	item, err := h.api.UpdateItem(r.Context(), itemID, fields)
	if err != nil {
		writeError(w, err, "Failed to update item")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "item_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item_id must be a positive integer")
		return
	}

	if err := h.api.DeleteItem(r.Context(), itemID); err != nil {
		writeError(w, err, "Failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
