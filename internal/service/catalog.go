package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	"github.com/mtsdb/dropship-oasis-storefront/internal/repository"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

// ProductInput holds the fields for creating or updating a product.
// Prices are integer cents.
type ProductInput struct {
	Name        string `json:"name" validate:"required"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	ImageURL    string `json:"image" validate:"omitempty,url"`
	Description string `json:"description"`
}

// CatalogService serves the product catalog and its admin mutations.
type CatalogService struct {
	catalog      repository.CatalogRepository
	notifier     notify.Notifier
	logger       *slog.Logger
	catalogDelay time.Duration
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	catalog repository.CatalogRepository,
	notifier notify.Notifier,
	logger *slog.Logger,
	catalogDelay time.Duration,
) *CatalogService {
	return &CatalogService{
		catalog:      catalog,
		notifier:     notifier,
		logger:       logger,
		catalogDelay: catalogDelay,
	}
}

// ListProducts returns the catalog in insertion order, optionally filtered
// by a case-insensitive substring match on name or description.
func (s *CatalogService) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	if err := s.simulateDelay(ctx); err != nil {
		return nil, err
	}

	products, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	search = strings.TrimSpace(search)
	if search == "" {
		return products, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProduct returns one product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// CreateProduct adds a product to the catalog with a generated ID.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          fmt.Sprintf("product-%d", time.Now().UnixMilli()),
		Name:        input.Name,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	}

	if err := s.catalog.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.notifier.Success(ctx, fmt.Sprintf("Product %q added successfully!", product.Name))

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: input.Description,
	}

	if err := s.catalog.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.notifier.Success(ctx, fmt.Sprintf("Product %q updated successfully!", product.Name))

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", id),
	)

	return product, nil
}

// DeleteProduct removes a product from the catalog. Carts that already
// hold the product keep their snapshot of it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}

	if err := s.catalog.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.notifier.Success(ctx, "Product deleted successfully!")

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}

func (s *CatalogService) simulateDelay(ctx context.Context) error {
	if s.catalogDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.catalogDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
