// Package filter narrows a catalogue by search term, price range and category.
package filter

import (
	"net/url"
	"strings"

	"mini-storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Apply returns the products that match criteria, in catalogue order.
// A product matches when its price lies in [MinPrice, MaxPrice], its category
// equals the criteria category (or the criteria category is the any sentinel),
// and its name contains the search term ignoring case. When MinPrice exceeds
// MaxPrice nothing matches.
func Apply(catalog []model.Product, criteria model.FilterCriteria) []model.Product {
	term := strings.ToLower(criteria.SearchTerm)
	anyCategory := criteria.MatchesAnyCategory()

	result := make([]model.Product, 0, len(catalog))
	for _, p := range catalog {
		if p.Price.LessThan(criteria.MinPrice) || p.Price.GreaterThan(criteria.MaxPrice) {
			continue
		}
		if !anyCategory && p.Category != criteria.Category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Categories returns the distinct categories of catalog in first-seen order.
func Categories(catalog []model.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range catalog {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// Query parameter names understood by ParseCriteria and Encode.
const (
	ParamSearch   = "search"
	ParamMin      = "min"
	ParamMax      = "max"
	ParamCategory = "category"
)

// ParseCriteria builds criteria from URL query values. Missing or malformed
// prices keep their defaults.
func ParseCriteria(values url.Values) model.FilterCriteria {
	criteria := model.DefaultFilterCriteria()
	criteria.SearchTerm = values.Get(ParamSearch)
	criteria.Category = values.Get(ParamCategory)

	if v := strings.TrimSpace(values.Get(ParamMin)); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			criteria.MinPrice = d
		}
	}
	if v := strings.TrimSpace(values.Get(ParamMax)); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			criteria.MaxPrice = d
		}
	}
	return criteria
}

// Encode is the inverse of ParseCriteria.
func Encode(criteria model.FilterCriteria) url.Values {
	values := url.Values{}
	if criteria.SearchTerm != "" {
		values.Set(ParamSearch, criteria.SearchTerm)
	}
	values.Set(ParamMin, criteria.MinPrice.String())
	values.Set(ParamMax, criteria.MaxPrice.String())
	if !criteria.MatchesAnyCategory() {
		values.Set(ParamCategory, criteria.Category)
	}
	return values
}
