package domain

// Product represents a storefront catalog item. Prices are in cents.
// Products are immutable once fetched; identity is the ID.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image"`
	Description string `json:"description"`
}
