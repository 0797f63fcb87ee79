package memory

import (
	"context"
	"sync"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

// CatalogRepository is an in-memory product store seeded with the demo
// catalog. Products keep their insertion order across mutations.
type CatalogRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewCatalogRepository returns a catalog seeded with the given products.
func NewCatalogRepository(seed []domain.Product) *CatalogRepository {
	products := make([]domain.Product, len(seed))
	copy(products, seed)
	return &CatalogRepository{products: products}
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, errors.NotFound("product", id)
}

func (r *CatalogRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == product.ID {
			return errors.AlreadyExists("product", "id", product.ID)
		}
	}
	r.products = append(r.products, *product)
	return nil
}

func (r *CatalogRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	return errors.NotFound("product", product.ID)
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("product", id)
}
