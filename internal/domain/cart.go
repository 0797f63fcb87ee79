package domain

import "time"

// Line is a single cart entry: a product snapshot and how many of it.
// A cart never holds two lines for the same product ID.
type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the ordered line sequence for one browsing context.
// Line order is add order; merging quantities never moves a line.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TotalItems returns the sum of all line quantities. It is recomputed on
// every call so it can never go stale relative to the line sequence.
func (c *Cart) TotalItems() int {
	var total int
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of price*quantity over all lines, in cents.
// Recomputed on every call, same as TotalItems.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Product.Price * int64(line.Quantity)
	}
	return total
}

// FindLineIndex returns the index of the line holding the given product ID,
// or -1 if the product is not in the cart.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
