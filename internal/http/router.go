package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hdtbpedro/web-shop-direct/internal/auth"
)

// NewRouter assembles the full routed surface. The catalog view doubles as
// the root page; unknown paths get a JSON not-found body.
func NewRouter(products *ProductHandler, carts *CartHandler, admin *AdminHandler, gate *auth.Gate, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "page not found")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog view.
	r.Get("/", products.List)

	// Cart-link entry point: replaces the cart and redirects home.
	r.Get("/carrinho/{items}", carts.ApplyLink)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(gate))
				r.Post("/", products.Create)
				r.Put("/{id}", products.Update)
				r.Delete("/{id}", products.Delete)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Delete("/", carts.Clear)
			r.Post("/items", carts.AddItem)
			r.Post("/items/{sku}/decrement", carts.Decrement)
			r.Delete("/items/{sku}", carts.RemoveItem)
			r.Get("/link", carts.Link)
			r.Get("/checkout", carts.Checkout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", admin.Login)
			r.Group(func(r chi.Router) {
				r.Use(AdminAuthMiddleware(gate))
				r.Post("/logout", admin.Logout)
				r.Put("/credentials", admin.SetCredentials)
				r.Get("/whatsapp", admin.GetWhatsApp)
				r.Put("/whatsapp", admin.SetWhatsApp)
			})
		})
	})

	return r
}
