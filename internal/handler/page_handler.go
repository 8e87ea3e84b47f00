package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"mini-storefront/internal/cart"
	"mini-storefront/internal/filter"
	"mini-storefront/internal/middleware"
	"mini-storefront/internal/model"
	"mini-storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("storefront.html").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).ParseFS(templateFS, "templates/storefront.html"))

// pageData is everything the storefront template renders.
type pageData struct {
	Search     string
	Min        string
	Max        string
	Category   string
	AnyValue   string
	Categories []string
	Products   []model.Product
	Cart       model.Cart
	Count      int
	Query      template.URL
}

// PageHandler serves the server-rendered storefront page and its cart forms.
type PageHandler struct {
	service service.StorefrontService
	logger  zerolog.Logger
}

// NewPageHandler creates a new storefront page handler.
func NewPageHandler(service service.StorefrontService, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger.With().Str("handler", "page").Logger(),
	}
}

// Index handles GET / and renders the filtered catalogue with the cart.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	criteria := filter.ParseCriteria(r.URL.Query())
	c := h.service.Cart(r.Context(), middleware.CartKey(r.Context()))

	category := criteria.Category
	if criteria.MatchesAnyCategory() {
		category = model.AnyCategory
	}

	data := pageData{
		Search:     criteria.SearchTerm,
		Min:        criteria.MinPrice.String(),
		Max:        criteria.MaxPrice.String(),
		Category:   category,
		AnyValue:   model.AnyCategory,
		Categories: h.service.Categories(),
		Products:   h.service.Browse(criteria),
		Cart:       c,
		Count:      cart.Count(c),
		Query:      template.URL(filter.Encode(criteria).Encode()),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to render storefront")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Add handles POST /cart/add with form field product_id.
func (h *PageHandler) Add(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.AddToCart(r.Context(), middleware.CartKey(r.Context()), r.PostFormValue("product_id"))
	if err != nil {
		h.logger.Warn().Err(err).Msg("add to cart rejected")
	}
	h.redirectBack(w, r)
}

// Remove handles POST /cart/remove with form field product_id.
func (h *PageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.RemoveFromCart(r.Context(), middleware.CartKey(r.Context()), r.PostFormValue("product_id"))
	if err != nil {
		h.logger.Warn().Err(err).Msg("remove from cart rejected")
	}
	h.redirectBack(w, r)
}

// redirectBack returns to the storefront keeping the filter from the action URL.
func (h *PageHandler) redirectBack(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if q := filter.Encode(filter.ParseCriteria(r.URL.Query())).Encode(); q != "" {
		target += "?" + q
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
