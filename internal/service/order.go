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

// CheckoutInput holds the shipping and payment form submitted at checkout.
// Payment details are collected and discarded; no charge is ever made.
type CheckoutInput struct {
	FirstName     string `json:"first_name" validate:"required,min=2"`
	LastName      string `json:"last_name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required,min=5"`
	City          string `json:"city" validate:"required,min=2"`
	State         string `json:"state" validate:"required,min=2"`
	ZipCode       string `json:"zip_code" validate:"required,min=5"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=credit paypal"`
}

// UpdateStatusInput holds the new status for an order.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderService implements checkout and the admin order operations.
type OrderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	notifier notify.Notifier
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	notifier notify.Notifier,
	producer *event.Producer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

// PlaceOrder turns the cart of a browsing context into a pending order.
// Totals come from the cart's line snapshots plus the flat tax; the client
// submits no amounts. The cart is cleared once the order is stored.
func (s *OrderService) PlaceOrder(ctx context.Context, cartID string, input CheckoutInput) (*domain.Order, error) {
	if cartID == "" {
		return nil, apperrors.InvalidInput("cart id is required")
	}

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	items := make([]domain.OrderItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = domain.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Quantity,
		}
	}

	subtotal := cart.TotalPrice()
	tax := domain.ComputeTax(subtotal)

	id, err := s.orders.NextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve order id: %w", err)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:           id,
		CustomerName: input.FirstName + " " + input.LastName,
		Email:        input.Email,
		Items:        items,
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        subtotal + tax,
		Status:       domain.OrderStatusPending,
		ShippingAddress: domain.Address{
			Address: input.Address,
			City:    input.City,
			State:   input.State,
			ZipCode: input.ZipCode,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.notifier.Success(ctx, "Your order has been placed successfully!")

	if err := s.carts.Delete(ctx, cartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("cart_id", cartID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	} else {
		s.notifier.Info(ctx, "Cart cleared")
	}

	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.producer.PublishCartCleared(ctx, cartID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int64("total", order.Total),
		slog.Int("items", len(order.Items)),
	)

	return order, nil
}

// ListOrders returns all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns one order by ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus sets an order to any valid status. Transitions are
// unconstrained; the admin panel allows any status from any status.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, input UpdateStatusInput) (*domain.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	if !domain.IsValidStatus(input.Status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid order status %q", input.Status))
	}

	order, err := s.orders.UpdateStatus(ctx, id, input.Status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.notifier.Success(ctx, fmt.Sprintf("Order %s status updated to %s", order.ID, order.Status))

	if err := s.producer.PublishOrderStatusChanged(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", order.ID),
		slog.String("status", order.Status),
	)

	return order, nil
}
