// Package catalog supplies the immutable product catalogue and the loaders
// that read it from the built-in list, local files or S3.
package catalog

import (
	"context"
	"fmt"

	"mini-storefront/internal/model"
)

// Loader defines the interface for loading a product catalogue.
type Loader interface {
	// Load reads the catalogue stored at location. The meaning of location
	// depends on the loader (file path, object key); some loaders ignore it.
	Load(ctx context.Context, location string) ([]model.Product, error)
}

// Catalog is a validated, read-only product snapshot with lookup by ID.
type Catalog struct {
	products []model.Product
	byID     map[string]int
}

// New validates products and builds a catalogue.
// Every product needs a non-empty unique ID and a non-negative price.
func New(products []model.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]model.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}

	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product %d: %w", i, model.ErrInvalidCatalog)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %s: negative price: %w", p.ID, model.ErrInvalidCatalog)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("product %s: %w", p.ID, model.ErrDuplicateProduct)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Products returns the catalogue in its source order.
// The returned slice is a copy; callers may not affect the catalogue through it.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Lookup returns the product with the given ID.
func (c *Catalog) Lookup(id string) (model.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Load builds a validated catalogue from loader.
func Load(ctx context.Context, loader Loader, location string) (*Catalog, error) {
	products, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return New(products)
}
