package http

import (
	"encoding/json"
	"net/http"

	"github.com/hdtbpedro/web-shop-direct/internal/auth"
	"github.com/hdtbpedro/web-shop-direct/internal/checkout"
)

type AdminHandler struct {
	gate     *auth.Gate
	settings *checkout.Settings
}

func NewAdminHandler(gate *auth.Gate, settings *checkout.Settings) *AdminHandler {
	return &AdminHandler{gate: gate, settings: settings}
}

type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CredentialsRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type WhatsAppConfigDTO struct {
	Number string `json:"number"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.gate.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) SetCredentials(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_credentials", "username and password are required")
		return
	}

	if err := h.gate.SetCredentials(r.Context(), req.Username, req.Password); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) GetWhatsApp(w http.ResponseWriter, r *http.Request) {
	number, err := h.settings.WhatsAppNumber(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, WhatsAppConfigDTO{Number: number})
}

func (h *AdminHandler) SetWhatsApp(w http.ResponseWriter, r *http.Request) {
	var req WhatsAppConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.settings.SetWhatsAppNumber(r.Context(), req.Number); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
