package model

import "github.com/shopspring/decimal"

// CartLine is a product together with the quantity selected for purchase.
// A cart holds at most one line per product ID.
type CartLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	ImageRef string          `json:"imageRef"`
	Quantity int             `json:"quantity"`
}

// NewCartLine creates a cart line for product with the given quantity.
func NewCartLine(p Product, quantity int) CartLine {
	return CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		ImageRef: p.ImageRef,
		Quantity: quantity,
	}
}

// Cart is the ordered list of lines; order is first-add order.
type Cart []CartLine

// EmptyCart returns a cart with no lines that still encodes as a JSON array.
func EmptyCart() Cart {
	return Cart{}
}
