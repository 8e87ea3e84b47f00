// Package cart implements the cart reducer. Add and Remove are total functions
// that return a new cart and never modify their input.
package cart

import "mini-storefront/internal/model"

// Add returns a cart with one more unit of p. An existing line for p keeps its
// position and has its quantity incremented; otherwise a line with quantity 1 is appended.
func Add(c model.Cart, p model.Product) model.Cart {
	next := make(model.Cart, 0, len(c)+1)
	found := false
	for _, line := range c {
		if line.ID == p.ID {
			line.Quantity++
			found = true
		}
		next = append(next, line)
	}
	if !found {
		next = append(next, model.NewCartLine(p, 1))
	}
	return next
}

// Remove returns a cart without the line for productID.
// Removing an ID that is not in the cart returns an equivalent cart.
func Remove(c model.Cart, productID string) model.Cart {
	next := make(model.Cart, 0, len(c))
	for _, line := range c {
		if line.ID != productID {
			next = append(next, line)
		}
	}
	return next
}

// Find returns the line for productID, if present.
func Find(c model.Cart, productID string) (model.CartLine, bool) {
	for _, line := range c {
		if line.ID == productID {
			return line, true
		}
	}
	return model.CartLine{}, false
}

// Count returns the total number of units in the cart.
func Count(c model.Cart) int {
	n := 0
	for _, line := range c {
		n += line.Quantity
	}
	return n
}

// Normalize drops lines that violate the cart invariants: empty IDs,
// non-positive quantities, and repeated IDs after the first occurrence.
// It is applied to carts restored from storage.
func Normalize(c model.Cart) model.Cart {
	next := make(model.Cart, 0, len(c))
	seen := make(map[string]struct{}, len(c))
	for _, line := range c {
		if line.ID == "" || line.Quantity <= 0 {
			continue
		}
		if _, dup := seen[line.ID]; dup {
			continue
		}
		seen[line.ID] = struct{}{}
		next = append(next, line)
	}
	return next
}
