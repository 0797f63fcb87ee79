package memory

import (
	"time"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
)

// SeedProducts returns the fixed demo catalog. There is no real inventory
// behind it; admin mutations operate on the in-memory copy only.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Wireless Earbuds",
			Price:       5999,
			ImageURL:    "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
			Description: "High-quality wireless earbuds with noise cancellation and long battery life.",
		},
		{
			ID:          "2",
			Name:        "Smart Watch",
			Price:       12999,
			ImageURL:    "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
			Description: "Feature-rich smartwatch with health tracking, notifications, and customizable watch faces.",
		},
		{
			ID:          "3",
			Name:        "Portable Bluetooth Speaker",
			Price:       4999,
			ImageURL:    "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
			Description: "Compact portable speaker with amazing sound quality and 20-hour battery life.",
		},
		{
			ID:          "4",
			Name:        "Phone Camera Lens Kit",
			Price:       2999,
			ImageURL:    "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
			Description: "Versatile lens kit for smartphone photography, includes wide angle, macro, and fisheye lenses.",
		},
		{
			ID:          "5",
			Name:        "Laptop Stand",
			Price:       3999,
			ImageURL:    "https://images.unsplash.com/photo-1661961110372-8a7682543120?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
			Description: "Adjustable aluminum laptop stand for improved ergonomics and cooling.",
		},
		{
			ID:          "6",
			Name:        "Wireless Charging Pad",
			Price:       2499,
			ImageURL:    "https://images.unsplash.com/photo-1586953208448-b95a79798f07?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60",
			Description: "Fast wireless charging pad compatible with all Qi-enabled devices.",
		},
	}
}

// SeedOrders returns the demo order history shown in the admin panel.
// Totals follow the checkout math: subtotal plus flat tax.
func SeedOrders() []domain.Order {
	return []domain.Order{
		seedOrder("ORD-1001", "2023-05-10", "John Doe", "john@example.com", domain.OrderStatusDelivered,
			[]domain.OrderItem{
				{ProductID: "1", ProductName: "Wireless Earbuds", Price: 5999, Quantity: 1},
				{ProductID: "6", ProductName: "Wireless Charging Pad", Price: 2499, Quantity: 1},
			},
			domain.Address{Address: "123 Main St", City: "New York", State: "NY", ZipCode: "10001"},
		),
		seedOrder("ORD-1002", "2023-05-12", "Jane Smith", "jane@example.com", domain.OrderStatusShipped,
			[]domain.OrderItem{
				{ProductID: "2", ProductName: "Smart Watch", Price: 12999, Quantity: 1},
			},
			domain.Address{Address: "456 Elm St", City: "Los Angeles", State: "CA", ZipCode: "90001"},
		),
		seedOrder("ORD-1003", "2023-05-15", "Bob Johnson", "bob@example.com", domain.OrderStatusProcessing,
			[]domain.OrderItem{
				{ProductID: "3", ProductName: "Portable Bluetooth Speaker", Price: 4999, Quantity: 1},
				{ProductID: "4", ProductName: "Phone Camera Lens Kit", Price: 2999, Quantity: 1},
			},
			domain.Address{Address: "789 Oak St", City: "Chicago", State: "IL", ZipCode: "60007"},
		),
		seedOrder("ORD-1004", "2023-05-17", "Sarah Williams", "sarah@example.com", domain.OrderStatusPending,
			[]domain.OrderItem{
				{ProductID: "5", ProductName: "Laptop Stand", Price: 3999, Quantity: 1},
			},
			domain.Address{Address: "101 Pine St", City: "Seattle", State: "WA", ZipCode: "98101"},
		),
		seedOrder("ORD-1005", "2023-05-20", "Michael Brown", "michael@example.com", domain.OrderStatusCancelled,
			[]domain.OrderItem{
				{ProductID: "6", ProductName: "Wireless Charging Pad", Price: 2499, Quantity: 1},
				{ProductID: "2", ProductName: "Smart Watch", Price: 12999, Quantity: 1},
			},
			domain.Address{Address: "202 Maple St", City: "Boston", State: "MA", ZipCode: "02108"},
		),
	}
}

func seedOrder(id, date, customer, email, status string, items []domain.OrderItem, addr domain.Address) domain.Order {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}
	tax := domain.ComputeTax(subtotal)

	created, _ := time.Parse("2006-01-02", date)

	return domain.Order{
		ID:              id,
		CustomerName:    customer,
		Email:           email,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           subtotal + tax,
		Status:          status,
		ShippingAddress: addr,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}
