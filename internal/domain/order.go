package domain

import "time"

// Order status constants, matching the storefront admin panel vocabulary.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// TaxRatePercent is the flat tax rate applied at checkout.
const TaxRatePercent = 10

// Order represents a placed customer order. Amounts are in cents.
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customer_name"`
	Email           string      `json:"email"`
	Items           []OrderItem `json:"items"`
	Subtotal        int64       `json:"subtotal"`
	Tax             int64       `json:"tax"`
	Total           int64       `json:"total"`
	Status          string      `json:"status"`
	ShippingAddress Address     `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is a priced line snapshot within an order.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
}

// Address is the shipping destination captured by the checkout form.
type Address struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// ComputeTax returns the flat-rate tax for the given subtotal.
func ComputeTax(subtotal int64) int64 {
	return subtotal * TaxRatePercent / 100
}

// ValidStatuses returns all valid order statuses.
func ValidStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
