package router

import (
	"net/http"

	"mini-storefront/internal/handler"
	"mini-storefront/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	pageHandler *handler.PageHandler,
	apiHandler *handler.APIHandler,
	cookieName string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.CartSession(cookieName, logger))

		r.Get("/", pageHandler.Index)
		r.Post("/cart/add", pageHandler.Add)
		r.Post("/cart/remove", pageHandler.Remove)

		r.Route("/api", func(r chi.Router) {
			r.Get("/products", apiHandler.Products)
			r.Get("/categories", apiHandler.Categories)
			r.Get("/cart", apiHandler.Cart)
			r.Post("/cart/items", apiHandler.AddItem)
			r.Delete("/cart/items/{id}", apiHandler.RemoveItem)
		})
	})

	return r
}
