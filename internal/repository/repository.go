package repository

import (
	"context"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
)

// SessionRepository persists the serialized identity snapshot of an
// authenticated session in a durable key-value slot.
type SessionRepository interface {
	// Get retrieves the identity snapshot for a session token. A missing
	// slot and a malformed snapshot both surface as ErrNotFound; malformed
	// content is discarded on read so the session falls back to anonymous.
	Get(ctx context.Context, token string) (*domain.UserIdentity, error)

	// Save writes the identity snapshot for a session token, overwriting
	// any previous snapshot.
	Save(ctx context.Context, token string, identity *domain.UserIdentity) error

	// Delete clears the slot for a session token. Deleting an absent slot
	// is not an error.
	Delete(ctx context.Context, token string) error
}

// CartRepository persists carts keyed by browsing-context ID, the same way
// the session snapshot is persisted.
type CartRepository interface {
	// Get retrieves a cart by its ID, or ErrNotFound.
	Get(ctx context.Context, cartID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart with the same ID.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart. Deleting an absent cart is not an error.
	Delete(ctx context.Context, cartID string) error
}

// CatalogRepository holds the product catalog.
type CatalogRepository interface {
	// List returns all products in insertion order.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID returns the product with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Create adds a new product. Returns ErrAlreadyExists on an ID clash.
	Create(ctx context.Context, product *domain.Product) error

	// Update replaces an existing product, or returns ErrNotFound.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// OrderRepository holds placed orders.
type OrderRepository interface {
	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// GetByID returns the order with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// Create stores a new order. Returns ErrAlreadyExists on an ID clash.
	Create(ctx context.Context, order *domain.Order) error

	// UpdateStatus sets the status of an existing order and returns the
	// updated order, or ErrNotFound.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)

	// NextID reserves the next order ID in the ORD-<n> sequence.
	NextID(ctx context.Context) (string, error)
}
