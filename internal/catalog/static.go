package catalog

import (
	"context"

	"mini-storefront/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultProducts returns the built-in demo catalogue.
func DefaultProducts() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Orange", Price: decimal.RequireFromString("1.50"), Category: "fruits", ImageRef: "orange.jpg"},
		{ID: "p2", Name: "Apple", Price: decimal.RequireFromString("2.00"), Category: "fruits", ImageRef: "apple.jpg"},
		{ID: "p3", Name: "Guava", Price: decimal.RequireFromString("3.20"), Category: "fruits", ImageRef: "guava.jpg"},
		{ID: "p4", Name: "Smartphone", Price: decimal.RequireFromString("1200.00"), Category: "electronics", ImageRef: "smartphone.jpg"},
		{ID: "p5", Name: "Laptop", Price: decimal.RequireFromString("1800.00"), Category: "electronics", ImageRef: "laptop.jpg"},
		{ID: "p6", Name: "Headphones", Price: decimal.RequireFromString("150.00"), Category: "electronics", ImageRef: "headphones.jpg"},
	}
}

// staticLoader implements Loader over a fixed in-memory list.
type staticLoader struct {
	products []model.Product
}

// NewStaticLoader creates a loader that always returns products.
// A nil list selects DefaultProducts.
func NewStaticLoader(products []model.Product) Loader {
	if products == nil {
		products = DefaultProducts()
	}
	return &staticLoader{products: products}
}

// Load returns a copy of the fixed list. location is ignored.
func (l *staticLoader) Load(ctx context.Context, _ string) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]model.Product, len(l.products))
	copy(out, l.products)
	return out, nil
}
