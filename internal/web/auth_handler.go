package web

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ghrd1/shop-front/internal/session"
)

type AuthHandler struct {
	sessions *session.Manager
	log      logrus.FieldLogger
}

func NewAuthHandler(sessions *session.Manager, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{sessions: sessions, log: log}
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequestDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type profileUpdateDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	if err := h.sessions.Login(r.Context(), req.Email, req.Password); err != nil {
		h.log.WithError(err).Info("login failed")
		writeError(w, err, "Login failed")
		return
	}

	user, _ := h.sessions.User()
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	if err := h.sessions.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		h.log.WithError(err).Info("registration failed")
		writeError(w, err, "Registration failed")
		return
	}

	user, _ := h.sessions.User()
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.User()
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in first")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.sessions.UpdateProfile(r.Context(), req.FirstName, req.LastName); err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	user, _ := h.sessions.User()
	respondJSON(w, http.StatusOK, user)
}
