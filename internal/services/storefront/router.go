package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(h.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/health", h.HealthCheck)
	r.Get("/menu", h.Menu)
	r.Get("/menu/items/{itemID}", h.MenuItem)
	r.Post("/menu/items/{itemID}/reviews", h.AddReview)
	r.Get("/restaurant", h.Restaurant)

	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)

		r.Post("/cart/items", h.AddItem)
		r.Patch("/cart/lines", h.UpdateLine)
		r.Delete("/cart/lines", h.RemoveLine)
		r.Delete("/cart", h.ClearCart)

		r.Put("/order-type", h.SetOrderType)
		r.Put("/branch", h.SelectBranch)
		r.Put("/tier", h.SelectTier)
		r.Patch("/customer", h.UpdateCustomer)
		r.Post("/location", h.ShareLocation)

		r.Post("/checkout", h.Checkout)
		r.Get("/last-order", h.LastOrder)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.requireAdmin)

		r.Get("/orders", h.ListOrders)
		r.Get("/audit", h.Audit)
		r.Post("/catalog/refresh", h.RefreshCatalog)
		r.Post("/items", h.AddMenuItem)
		r.Delete("/items/{itemID}", h.DeleteMenuItem)
		r.Put("/items/{itemID}/price", h.UpdatePrice)
		r.Post("/items/{itemID}/availability/toggle", h.ToggleAvailability)
		r.Put("/restaurant", h.UpdateRestaurant)
	})

	return r
}
