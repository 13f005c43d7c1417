package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdtbpedro/web-shop-direct/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(c *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: c}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Products())
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeProductInput(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Add(r.Context(), input)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	input, ok := decodeProductInput(w, r)
	if !ok {
		return
	}

	if err := h.catalog.Update(r.Context(), id, input); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeProductInput parses and validates the request body. The image
// requirement lives here at the admin boundary only; the catalog itself does
// not care.
func decodeProductInput(w http.ResponseWriter, r *http.Request) (catalog.ProductInput, bool) {
	var input catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return input, false
	}

	if input.SKU == "" {
		respondError(w, http.StatusBadRequest, "invalid_sku", "sku is required")
		return input, false
	}
	if input.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return input, false
	}
	if input.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return input, false
	}
	if len(input.ImageURLs) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_images", "at least one image is required")
		return input, false
	}

	return input, true
}
