package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mini-storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPageHandler_Index(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		products    []model.Product
		cart        model.Cart
		contains    []string
		notContains []string
	}{
		{
			name:     "Renders products and cart",
			products: []model.Product{orange, laptop},
			cart:     model.Cart{model.NewCartLine(orange, 2)},
			contains: []string{
				"Orange", "$1.50", "Laptop", "$1800.00",
				"Cart (2)", "Orange x 2",
				`<option value="any" selected>`,
			},
			notContains: []string{"No products match", "Your cart is empty"},
		},
		{
			name:     "Empty result shows message",
			query:    "?search=zzz&category=fruits",
			products: []model.Product{},
			cart:     model.Cart{},
			contains: []string{
				"No products match", "Your cart is empty", "Cart (0)",
				`value="zzz"`, `<option value="fruits" selected>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockStorefrontService)
			mockService.On("Browse", mock.Anything).Return(tt.products)
			mockService.On("Categories").Return([]string{"fruits", "electronics"})
			mockService.On("Cart", mock.Anything, testKey).Return(tt.cart)

			h := NewPageHandler(mockService, zerolog.Nop())
			w := httptest.NewRecorder()

			h.Index(w, withCartKey(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			body := w.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestPageHandler_Index_AppliesQuery(t *testing.T) {
	want := model.FilterCriteria{
		SearchTerm: "or",
		MinPrice:   decimal.Zero,
		MaxPrice:   decimal.NewFromInt(2),
		Category:   "fruits",
	}

	mockService := new(MockStorefrontService)
	mockService.On("Browse", criteriaMatching(want)).Return([]model.Product{orange})
	mockService.On("Categories").Return([]string{"fruits"})
	mockService.On("Cart", mock.Anything, testKey).Return(model.Cart{})

	h := NewPageHandler(mockService, zerolog.Nop())
	w := httptest.NewRecorder()

	h.Index(w, withCartKey(httptest.NewRequest(http.MethodGet, "/?search=or&max=2&category=fruits", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/cart/add?category=fruits&amp;max=2&amp;min=0&amp;search=or"`)
	mockService.AssertExpectations(t)
}

func TestPageHandler_CartForms(t *testing.T) {
	tests := []struct {
		name             string
		path             string
		method           string
		productID        string
		mockError        error
		expectedLocation string
	}{
		{
			name:             "Add keeps the filter",
			path:             "/cart/add?search=or&category=fruits",
			method:           "AddToCart",
			productID:        "p1",
			expectedLocation: "/?category=fruits&max=2000&min=0&search=or",
		},
		{
			name:             "Remove without filter",
			path:             "/cart/remove",
			method:           "RemoveFromCart",
			productID:        "p1",
			expectedLocation: "/?max=2000&min=0",
		},
		{
			name:             "Missing product still redirects",
			path:             "/cart/add",
			method:           "AddToCart",
			productID:        "",
			mockError:        model.ErrMissingProductID,
			expectedLocation: "/?max=2000&min=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockStorefrontService)
			if tt.mockError != nil {
				mockService.On(tt.method, mock.Anything, testKey, tt.productID).Return(nil, tt.mockError)
			} else {
				mockService.On(tt.method, mock.Anything, testKey, tt.productID).Return(model.Cart{}, nil)
			}

			h := NewPageHandler(mockService, zerolog.Nop())

			form := url.Values{}
			if tt.productID != "" {
				form.Set("product_id", tt.productID)
			}
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			if tt.method == "AddToCart" {
				h.Add(w, withCartKey(req))
			} else {
				h.Remove(w, withCartKey(req))
			}

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			mockService.AssertExpectations(t)
		})
	}
}
