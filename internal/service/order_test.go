package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	"github.com/mtsdb/dropship-oasis-storefront/internal/repository/memory"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

func newTestOrderService(t *testing.T, carts *mockCartRepository, recorder *notify.Recorder) *OrderService {
	t.Helper()
	orders := memory.NewOrderRepository(memory.SeedOrders())
	return NewOrderService(orders, carts, recorder, newTestProducer(t), newTestLogger())
}

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		FirstName:     "Regular",
		LastName:      "User",
		Email:         "user@example.com",
		Address:       "123 Main St",
		City:          "New York",
		State:         "NY",
		ZipCode:       "10001",
		PaymentMethod: "credit",
	}
}

func TestPlaceOrder(t *testing.T) {
	carts := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestOrderService(t, carts, recorder)
	ctx := context.Background()

	cart := cartWithLines("ctx-1",
		domain.Line{Product: domain.Product{ID: "1", Name: "Wireless Earbuds", Price: 5999}, Quantity: 2},
		domain.Line{Product: domain.Product{ID: "5", Name: "Laptop Stand", Price: 3999}, Quantity: 1},
	)
	carts.On("Get", ctx, "ctx-1").Return(cart, nil)
	carts.On("Delete", ctx, "ctx-1").Return(nil)

	order, err := svc.PlaceOrder(ctx, "ctx-1", checkoutInput())

	require.NoError(t, err)
	assert.Equal(t, "ORD-1006", order.ID)
	assert.Equal(t, "Regular User", order.CustomerName)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	// 2x5999 + 3999 = 15997, plus flat 10% tax.
	assert.Equal(t, int64(15997), order.Subtotal)
	assert.Equal(t, int64(1599), order.Tax)
	assert.Equal(t, int64(17596), order.Total)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Wireless Earbuds", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)

	messages := recorder.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Your order has been placed successfully!"}, messages[0])
	assert.Equal(t, notify.Message{Level: notify.LevelInfo, Text: "Cart cleared"}, messages[1])

	carts.AssertExpectations(t)

	stored, err := svc.GetOrder(ctx, "ORD-1006")
	require.NoError(t, err)
	assert.Equal(t, order.Total, stored.Total)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	carts := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestOrderService(t, carts, recorder)
	ctx := context.Background()

	carts.On("Get", ctx, "ctx-1").Return(cartWithLines("ctx-1"), nil)

	order, err := svc.PlaceOrder(ctx, "ctx-1", checkoutInput())

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Empty(t, recorder.Messages())
	carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPlaceOrder_NoStoredCart(t *testing.T) {
	carts := new(mockCartRepository)
	svc := newTestOrderService(t, carts, notify.NewRecorder())
	ctx := context.Background()

	carts.On("Get", ctx, "ctx-1").Return(nil, apperrors.NotFound("cart", "ctx-1"))

	_, err := svc.PlaceOrder(ctx, "ctx-1", checkoutInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListOrders_NewestFirst(t *testing.T) {
	svc := newTestOrderService(t, new(mockCartRepository), notify.NewRecorder())

	orders, err := svc.ListOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, "ORD-1005", orders[0].ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := newTestOrderService(t, new(mockCartRepository), notify.NewRecorder())

	_, err := svc.GetOrder(context.Background(), "ORD-9999")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	recorder := notify.NewRecorder()
	svc := newTestOrderService(t, new(mockCartRepository), recorder)
	ctx := context.Background()

	order, err := svc.UpdateOrderStatus(ctx, "ORD-1004", UpdateStatusInput{Status: domain.OrderStatusShipped})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Order ORD-1004 status updated to shipped"}, recorder.Last())
}

func TestUpdateOrderStatus_AnyTransitionAllowed(t *testing.T) {
	svc := newTestOrderService(t, new(mockCartRepository), notify.NewRecorder())
	ctx := context.Background()

	// Delivered back to pending is allowed; there is no transition graph.
	order, err := svc.UpdateOrderStatus(ctx, "ORD-1001", UpdateStatusInput{Status: domain.OrderStatusPending})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
}

func TestUpdateOrderStatus_InvalidStatus(t *testing.T) {
	recorder := notify.NewRecorder()
	svc := newTestOrderService(t, new(mockCartRepository), recorder)

	_, err := svc.UpdateOrderStatus(context.Background(), "ORD-1001", UpdateStatusInput{Status: "teleported"})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Empty(t, recorder.Messages())
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	svc := newTestOrderService(t, new(mockCartRepository), notify.NewRecorder())

	_, err := svc.UpdateOrderStatus(context.Background(), "ORD-9999", UpdateStatusInput{Status: domain.OrderStatusShipped})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
