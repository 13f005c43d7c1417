package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hdtbpedro/web-shop-direct/internal/cart"
	"github.com/hdtbpedro/web-shop-direct/internal/cartlink"
	"github.com/hdtbpedro/web-shop-direct/internal/catalog"
	"github.com/hdtbpedro/web-shop-direct/internal/checkout"
)

type CartHandler struct {
	cart     *cart.Service
	catalog  *catalog.Service
	applier  *cartlink.Applier
	settings *checkout.Settings
	baseURL  string
}

func NewCartHandler(c *cart.Service, cat *catalog.Service, applier *cartlink.Applier, settings *checkout.Settings, baseURL string) *CartHandler {
	return &CartHandler{
		cart:     c,
		catalog:  cat,
		applier:  applier,
		settings: settings,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

type AddItemRequestDTO struct {
	SKU      string `json:"sku"`
	Quantity *int   `json:"quantity,omitempty"`
}

// CartViewDTO is the cart as clients see it: the raw sku→qty map plus the
// derived count and total.
type CartViewDTO struct {
	Items map[string]int `json:"items"`
	Count int            `json:"count"`
	Total float64        `json:"total"`
}

func (h *CartHandler) view() CartViewDTO {
	return CartViewDTO{
		Items: h.cart.Items(),
		Count: h.cart.Count(),
		Total: h.cart.Total(),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SKU == "" {
		respondError(w, http.StatusBadRequest, "invalid_sku", "sku is required")
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	if err := h.cart.Add(r.Context(), req.SKU, qty); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	if err := h.cart.Decrement(r.Context(), sku); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	if err := h.cart.Remove(r.Context(), sku); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, h.view())
}

// Link returns the shareable URL reconstructing the current cart.
func (h *CartHandler) Link(w http.ResponseWriter, r *http.Request) {
	segment := cartlink.Encode(h.cart.Items(), h.catalog)
	respondJSON(w, http.StatusOK, map[string]string{
		"segment": segment,
		"url":     fmt.Sprintf("%s/carrinho/%s", h.baseURL, segment),
	})
}

type CheckoutResponseDTO struct {
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsappUrl"`
	Total       float64 `json:"total"`
}

// Checkout builds the order summary and the WhatsApp deep link. With no
// configured number the action is unavailable, reported as a conflict.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	number, err := h.settings.WhatsAppNumber(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	items := h.cart.Items()
	segment := cartlink.Encode(items, h.catalog)
	link := ""
	if segment != "" {
		link = fmt.Sprintf("%s/carrinho/%s", h.baseURL, segment)
	}

	message := strings.Join(checkout.BuildSummary(items, h.catalog, link), "\n")

	deepLink, err := checkout.BuildDeepLink(number, message)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutResponseDTO{
		Message:     message,
		WhatsAppURL: deepLink,
		Total:       h.cart.Total(),
	})
}

// ApplyLink handles /carrinho/{items}: replaces the cart with the decoded
// segment (once per segment) and sends the visitor back to the catalog.
func (h *CartHandler) ApplyLink(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "items")

	if _, err := h.applier.Apply(r.Context(), segment); err != nil {
		handleDomainError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
