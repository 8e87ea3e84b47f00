package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mini-storefront/internal/cart"
	"mini-storefront/internal/filter"
	"mini-storefront/internal/middleware"
	"mini-storefront/internal/model"
	"mini-storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// maxRequestBodyBytes caps JSON request bodies.
const maxRequestBodyBytes = 4 << 10

// CartResponse is the JSON view of a cart.
type CartResponse struct {
	Items model.Cart `json:"items"`
	Count int        `json:"count"`
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
}

// APIHandler serves the JSON storefront API.
type APIHandler struct {
	service service.StorefrontService
	logger  zerolog.Logger
}

// NewAPIHandler creates a new JSON API handler.
func NewAPIHandler(service service.StorefrontService, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		service: service,
		logger:  logger.With().Str("handler", "api").Logger(),
	}
}

// Products handles GET /api/products. Query parameters narrow the result
// the same way the storefront page filters.
func (h *APIHandler) Products(w http.ResponseWriter, r *http.Request) {
	criteria := filter.ParseCriteria(r.URL.Query())
	writeJSON(w, http.StatusOK, h.service.Browse(criteria))
}

// Categories handles GET /api/categories.
func (h *APIHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Categories())
}

// Cart handles GET /api/cart.
func (h *APIHandler) Cart(w http.ResponseWriter, r *http.Request) {
	c := h.service.Cart(r.Context(), middleware.CartKey(r.Context()))
	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// AddItem handles POST /api/cart/items.
func (h *APIHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, model.ErrCodeRequestTooLarge, "request body too large", h.logger)
			return
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	c, err := h.service.AddToCart(r.Context(), middleware.CartKey(r.Context()), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(c))
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *APIHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	c, err := h.service.RemoveFromCart(r.Context(), middleware.CartKey(r.Context()), productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newCartResponse(c))
}

func newCartResponse(c model.Cart) CartResponse {
	if c == nil {
		c = model.EmptyCart()
	}
	return CartResponse{Items: c, Count: cart.Count(c)}
}
