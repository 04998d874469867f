package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ghrd1/shop-front/internal/api"
)

type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
	Code   string   `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeError maps the client error taxonomy onto HTTP responses. The server's
// own message is surfaced when present; transport failures and anything
// unclassified fall back to the flow's generic message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var valErr *api.ValidationError
	var authErr *api.AuthError
	var nfErr *api.NotFoundError
	var netErr *api.NetworkError
	var apiErr *api.APIError

	switch {
	case errors.As(err, &valErr):
		// The full message list, never truncated to the first entry.
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  valErr.Error(),
			Errors: valErr.Messages,
			Code:   "validation_failed",
		})
	case errors.As(err, &authErr):
		respondError(w, http.StatusUnauthorized, "unauthenticated", authErr.Message)
	case errors.As(err, &nfErr):
		respondError(w, http.StatusNotFound, "not_found", nfErr.Message)
	case errors.As(err, &netErr):
		respondError(w, http.StatusBadGateway, "upstream_unavailable", fallback)
	case errors.As(err, &apiErr):
		respondError(w, apiErr.StatusCode, "upstream_error", apiErr.Message)
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}
