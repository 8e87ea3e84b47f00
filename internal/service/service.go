package service

import (
	"context"

	"mini-storefront/internal/model"
)

// StorefrontService defines the operations the storefront views dispatch.
type StorefrontService interface {
	// Products returns the whole catalogue in source order.
	Products() []model.Product

	// Categories returns the distinct catalogue categories in first-seen order.
	Categories() []string

	// Browse returns the catalogue products matching criteria.
	Browse(criteria model.FilterCriteria) []model.Product

	// DefaultCriteria returns the criteria a fresh view starts with.
	DefaultCriteria() model.FilterCriteria

	// Cart returns the cart stored under key.
	Cart(ctx context.Context, key string) model.Cart

	// AddToCart adds one unit of the product to the cart stored under key.
	AddToCart(ctx context.Context, key, productID string) (model.Cart, error)

	// RemoveFromCart removes the product's line from the cart stored under key.
	RemoveFromCart(ctx context.Context, key, productID string) (model.Cart, error)
}

// MutationHook runs after every cart change with the new cart value.
type MutationHook func(ctx context.Context, key string, c model.Cart)
