package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdtbpedro/web-shop-direct/internal/auth"
	"github.com/hdtbpedro/web-shop-direct/internal/cart"
	"github.com/hdtbpedro/web-shop-direct/internal/cartlink"
	"github.com/hdtbpedro/web-shop-direct/internal/catalog"
	"github.com/hdtbpedro/web-shop-direct/internal/checkout"
	"github.com/hdtbpedro/web-shop-direct/internal/domain"
	"github.com/hdtbpedro/web-shop-direct/internal/store"
)

// setupServer wires the full stack over an in-memory store, logged in as
// admin. Returns the router and a request helper.
type testServer struct {
	router   http.Handler
	catalog  *catalog.Service
	cart     *cart.Service
	gate     *auth.Gate
	settings *checkout.Settings
	token    string
}

func setupServer(t *testing.T) *testServer {
	ctx := context.Background()
	st := store.NewMemoryStore()

	catalogService := catalog.NewService(st)
	require.NoError(t, catalogService.Load(ctx))

	cartService := cart.NewService(st, catalogService)
	require.NoError(t, cartService.Load(ctx))

	gate := auth.NewGate(st)
	require.NoError(t, gate.Seed(ctx))
	token, err := gate.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	settings := checkout.NewSettings(st)
	applier := cartlink.NewApplier(cartService, catalogService)

	router := NewRouter(
		NewProductHandler(catalogService),
		NewCartHandler(cartService, catalogService, applier, settings, "http://localhost:8080"),
		NewAdminHandler(gate, settings),
		gate,
		5*time.Second,
	)

	return &testServer{
		router:   router,
		catalog:  catalogService,
		cart:     cartService,
		gate:     gate,
		settings: settings,
		token:    token,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, admin bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if admin {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/products", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 6)
}

func TestRootServesCatalogView(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 6)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodGet, "/definitely/not/here", nil, false)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Code)
}

func TestCreateProduct_RequiresAdmin(t *testing.T) {
	ts := setupServer(t)
	input := map[string]interface{}{
		"sku": "SKU-NEW", "name": "Novo", "price": 10.0,
		"imageUrls": []string{"https://example.com/a.jpg"},
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/products", input, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/products", input, true)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	ts := setupServer(t)
	input := map[string]interface{}{
		"sku": "sku-nebula-01", "name": "Clone", "price": 1.0,
		"imageUrls": []string{"https://example.com/a.jpg"},
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/products", input, true)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "duplicate_sku", resp.Code)
}

func TestCreateProduct_Validation(t *testing.T) {
	ts := setupServer(t)

	cases := []map[string]interface{}{
		{"name": "sem sku", "price": 1.0, "imageUrls": []string{"x"}},
		{"sku": "SKU-V", "price": 1.0, "imageUrls": []string{"x"}},
		{"sku": "SKU-V", "name": "n", "price": -1.0, "imageUrls": []string{"x"}},
		{"sku": "SKU-V", "name": "n", "price": 1.0},
	}
	for i, input := range cases {
		rec := ts.do(t, http.MethodPost, "/api/v1/products", input, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %d", i)
	}
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	created, err := ts.catalog.Add(ctx, catalog.ProductInput{
		SKU: "SKU-EDIT", Name: "Original", Price: 10,
		ImageURLs: []string{"https://example.com/a.jpg"},
	})
	require.NoError(t, err)

	update := map[string]interface{}{
		"sku": "SKU-EDIT", "name": "Editado", "price": 20.0,
		"imageUrls": []string{"https://example.com/b.jpg"},
	}
	rec := ts.do(t, http.MethodPut, "/api/v1/products/"+created.ID, update, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	got, ok := ts.catalog.ByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Editado", got.Name)

	rec = ts.do(t, http.MethodPut, "/api/v1/products/missing", update, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/products/"+created.ID, nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)
	_, ok = ts.catalog.ByID(created.ID)
	assert.False(t, ok)
}

func TestCartFlow(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"sku": "SKU-NEBULA-01", "quantity": 2}, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var view CartViewDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Count)
	assert.InDelta(t, 259.8, view.Total, 0.001)

	// Quantity defaults to 1 when omitted
	rec = ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]interface{}{"sku": "SKU-AURORA-02"}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 3, view.Count)

	rec = ts.do(t, http.MethodPost, "/api/v1/cart/items/SKU-NEBULA-01/decrement", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 1, view.Items["SKU-NEBULA-01"])

	rec = ts.do(t, http.MethodDelete, "/api/v1/cart/items/SKU-AURORA-02", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/cart", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 0, view.Count)
	assert.Equal(t, 0.0, view.Total)
}

func TestCartLink(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	require.NoError(t, ts.cart.Add(ctx, "SKU-NEBULA-01", 2))
	require.NoError(t, ts.cart.Add(ctx, "SKU-GONE", 1))

	rec := ts.do(t, http.MethodGet, "/api/v1/cart/link", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SKU-NEBULA-01:2", resp["segment"])
	assert.Equal(t, "http://localhost:8080/carrinho/SKU-NEBULA-01:2", resp["url"])
}

func TestApplyCartLink(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	require.NoError(t, ts.cart.Add(ctx, "SKU-ORION-03", 9))

	rec := ts.do(t, http.MethodGet, "/carrinho/SKU-NEBULA-01:2,SKU-AURORA-02:1", nil, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Full replacement, not merge
	assert.Equal(t, map[string]int{"SKU-NEBULA-01": 2, "SKU-AURORA-02": 1}, ts.cart.Items())

	// Re-visiting the same link must not re-apply
	require.NoError(t, ts.cart.Add(ctx, "SKU-NEBULA-01", 1))
	rec = ts.do(t, http.MethodGet, "/carrinho/SKU-NEBULA-01:2,SKU-AURORA-02:1", nil, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 3, ts.cart.Items()["SKU-NEBULA-01"])
}

func TestCheckout(t *testing.T) {
	ts := setupServer(t)
	ctx := context.Background()

	require.NoError(t, ts.cart.Add(ctx, "SKU-NEBULA-01", 1))

	// Unconfigured channel disables checkout
	rec := ts.do(t, http.MethodGet, "/api/v1/cart/checkout", nil, false)
	require.Equal(t, http.StatusConflict, rec.Code)

	require.NoError(t, ts.settings.SetWhatsAppNumber(ctx, "5511987654321"))

	rec = ts.do(t, http.MethodGet, "/api/v1/cart/checkout", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CheckoutResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Camiseta Nebula (SKU: SKU-NEBULA-01)")
	assert.Contains(t, resp.Message, "Total: R$ 129,90")
	assert.Contains(t, resp.Message, "Carrinho: http://localhost:8080/carrinho/SKU-NEBULA-01:1")
	assert.Contains(t, resp.WhatsAppURL, "https://wa.me/5511987654321?text=")
	assert.InDelta(t, 129.9, resp.Total, 0.001)
}

func TestAdminLoginFlow(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "admin", "password": "wrong"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "admin", "password": "admin123"}, false)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestAdminWhatsAppConfig(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPut, "/api/v1/admin/whatsapp", map[string]string{"number": "+55 11 98765-4321"}, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/admin/whatsapp", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp WhatsAppConfigDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "5511987654321", resp.Number)

	// Gated without a session
	rec = ts.do(t, http.MethodGet, "/api/v1/admin/whatsapp", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminSetCredentials(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodPut, "/api/v1/admin/credentials", map[string]string{"username": "owner", "password": "secret"}, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"username": "owner", "password": "secret"}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth(t *testing.T) {
	ts := setupServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fmt.Sprintf("{%q:%q}\n", "status", "ok"), rec.Body.String())
}
