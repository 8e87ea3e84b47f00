package model

import "github.com/shopspring/decimal"

// Product represents an item in the storefront catalogue.
// Products are created once by a catalog source and never mutated.
type Product struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Category string          `json:"category" yaml:"category"`
	ImageRef string          `json:"imageRef" yaml:"imageRef"`
}
