package model

import "github.com/shopspring/decimal"

// AnyCategory is the category sentinel that matches every product.
// The empty string is accepted as the same sentinel.
const AnyCategory = "any"

// Defaults used by the storefront when no criteria are supplied.
var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(2000)
)

// FilterCriteria narrows the displayed catalogue. It is transient UI state and is never persisted.
type FilterCriteria struct {
	SearchTerm string          `json:"search"`
	MinPrice   decimal.Decimal `json:"minPrice"`
	MaxPrice   decimal.Decimal `json:"maxPrice"`
	Category   string          `json:"category"`
}

// DefaultFilterCriteria returns the criteria a fresh storefront starts with.
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
	}
}

// MatchesAnyCategory reports whether the criteria's category is the any-category sentinel.
func (c FilterCriteria) MatchesAnyCategory() bool {
	return c.Category == "" || c.Category == AnyCategory
}
