package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/event"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	"github.com/mtsdb/dropship-oasis-storefront/internal/repository"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

// MaxQuantityPerLine is the upper bound for a single line quantity.
const MaxQuantityPerLine = 100

// CartService implements the cart operations for one browsing context.
// The catalog is the price authority: lines snapshot the product as it is
// at add time, and clients never submit prices.
type CartService struct {
	carts    repository.CartRepository
	catalog  repository.CatalogRepository
	notifier notify.Notifier
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(
	carts repository.CartRepository,
	catalog repository.CatalogRepository,
	notifier notify.Notifier,
	producer *event.Producer,
	logger *slog.Logger,
	cartTTL time.Duration,
) *CartService {
	return &CartService{
		carts:    carts,
		catalog:  catalog,
		notifier: notifier,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the cart for a browsing context. A context with no
// stored cart gets an empty one; nothing is persisted until a mutation.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(cartID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds quantity units of a product to the cart. If a line for the
// product already exists its quantity grows in place, keeping the line
// where it was. The product is resolved from the catalog at add time.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindLineIndex(productID); idx >= 0 {
		newQty := cart.Lines[idx].Quantity + quantity
		if newQty > MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
		}
		cart.Lines[idx].Quantity = newQty
		cart.Lines[idx].Product = *product
		if err := s.saveCart(ctx, cart); err != nil {
			return nil, err
		}
		s.notifier.Success(ctx, fmt.Sprintf("Updated quantity of %s in your cart", product.Name))
	} else {
		if quantity > MaxQuantityPerLine {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
		}
		cart.Lines = append(cart.Lines, domain.Line{Product: *product, Quantity: quantity})
		if err := s.saveCart(ctx, cart); err != nil {
			return nil, err
		}
		s.notifier.Success(ctx, fmt.Sprintf("Added %s to your cart", product.Name))
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem removes the line for a product. Removing a product that is
// not in the cart is a no-op, not an error, and emits no notification.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	name := cart.Lines[idx].Product.Name
	cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.notifier.Info(ctx, fmt.Sprintf("Removed %s from your cart", name))
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line. Zero or negative
// delegates to RemoveItem. A product with no line is a no-op. A plain
// quantity change emits no notification.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}
	if quantity > MaxQuantityPerLine {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerLine))
	}

	cart, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	cart.Lines[idx].Quantity = quantity

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("cart_id", cartID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// Clear empties the cart for a browsing context.
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return apperrors.InvalidInput("cart id is required")
	}

	if err := s.carts.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	s.notifier.Info(ctx, "Cart cleared")

	if err := s.producer.PublishCartCleared(ctx, cartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("cart_id", cartID))
	return nil
}

func (s *CartService) newEmptyCart(cartID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        cartID,
		Lines:     []domain.Line{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}

func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.carts.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("cart_id", cart.ID),
			slog.String("error", err.Error()),
		)
	}
}
