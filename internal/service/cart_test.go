package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	"github.com/mtsdb/dropship-oasis-storefront/internal/repository/memory"
	apperrors "github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

func newTestCartService(t *testing.T, repo *mockCartRepository, recorder *notify.Recorder) *CartService {
	t.Helper()
	catalog := memory.NewCatalogRepository(memory.SeedProducts())
	return NewCartService(repo, catalog, recorder, newTestProducer(t), newTestLogger(), 7*24*time.Hour)
}

func cartWithLines(cartID string, lines ...domain.Line) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        cartID,
		Lines:     lines,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

func earbuds() domain.Product {
	return domain.Product{ID: "1", Name: "Wireless Earbuds", Price: 5999}
}

func TestGetCart_MissingReturnsEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo, notify.NewRecorder())
	ctx := context.Background()

	repo.On("Get", ctx, "ctx-1").Return(nil, apperrors.NotFound("cart", "ctx-1"))

	cart, err := svc.GetCart(ctx, "ctx-1")

	require.NoError(t, err)
	assert.Equal(t, "ctx-1", cart.ID)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.TotalItems())
	assert.Zero(t, cart.TotalPrice())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_NewLine(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	repo.On("Get", ctx, "ctx-1").Return(nil, apperrors.NotFound("cart", "ctx-1"))
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(ctx, "ctx-1", "1", 1)

	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Wireless Earbuds", cart.Lines[0].Product.Name)
	assert.Equal(t, int64(5999), cart.Lines[0].Product.Price)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
	assert.Equal(t, int64(5999), cart.TotalPrice())

	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Added Wireless Earbuds to your cart"}, recorder.Last())
	repo.AssertExpectations(t)
}

func TestAddItem_MergesInPlace(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	existing := cartWithLines("ctx-1",
		domain.Line{Product: earbuds(), Quantity: 1},
		domain.Line{Product: domain.Product{ID: "2", Name: "Smart Watch", Price: 12999}, Quantity: 1},
	)
	repo.On("Get", ctx, "ctx-1").Return(existing, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	cart, err := svc.AddItem(ctx, "ctx-1", "1", 2)

	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "1", cart.Lines[0].Product.ID, "merged line keeps its position")
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, 4, cart.TotalItems())

	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Updated quantity of Wireless Earbuds in your cart"}, recorder.Last())
}

func TestAddItem_UnknownProduct(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)

	cart, err := svc.AddItem(context.Background(), "ctx-1", "999", 1)

	assert.Nil(t, cart)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, recorder.Messages())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo, notify.NewRecorder())
	ctx := context.Background()

	repo.On("Get", ctx, "ctx-1").Return(nil, apperrors.NotFound("cart", "ctx-1"))
	repo.On("Save", ctx, mock.Anything).Return(nil)

	cart, err := svc.AddItem(ctx, "ctx-1", "1", 0)

	require.NoError(t, err)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestRemoveItem_Present(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	existing := cartWithLines("ctx-1", domain.Line{Product: earbuds(), Quantity: 2})
	repo.On("Get", ctx, "ctx-1").Return(existing, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	cart, err := svc.RemoveItem(ctx, "ctx-1", "1")

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, notify.Message{Level: notify.LevelInfo, Text: "Removed Wireless Earbuds from your cart"}, recorder.Last())
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	existing := cartWithLines("ctx-1", domain.Line{Product: earbuds(), Quantity: 2})
	repo.On("Get", ctx, "ctx-1").Return(existing, nil)

	cart, err := svc.RemoveItem(ctx, "ctx-1", "999")

	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)
	assert.Empty(t, recorder.Messages())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	existing := cartWithLines("ctx-1", domain.Line{Product: earbuds(), Quantity: 2})
	repo.On("Get", ctx, "ctx-1").Return(existing, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "ctx-1", "1", 5)

	require.NoError(t, err)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Empty(t, recorder.Messages(), "quantity changes are silent")
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	existing := cartWithLines("ctx-1", domain.Line{Product: earbuds(), Quantity: 2})
	repo.On("Get", ctx, "ctx-1").Return(existing, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	cart, err := svc.UpdateQuantity(ctx, "ctx-1", "1", 0)

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, notify.Message{Level: notify.LevelInfo, Text: "Removed Wireless Earbuds from your cart"}, recorder.Last())
}

func TestUpdateQuantity_AbsentIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo, notify.NewRecorder())
	ctx := context.Background()

	existing := cartWithLines("ctx-1", domain.Line{Product: earbuds(), Quantity: 2})
	repo.On("Get", ctx, "ctx-1").Return(existing, nil)

	cart, err := svc.UpdateQuantity(ctx, "ctx-1", "999", 5)

	require.NoError(t, err)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestClear(t *testing.T) {
	repo := new(mockCartRepository)
	recorder := notify.NewRecorder()
	svc := newTestCartService(t, repo, recorder)
	ctx := context.Background()

	repo.On("Delete", ctx, "ctx-1").Return(nil)

	require.NoError(t, svc.Clear(ctx, "ctx-1"))
	assert.Equal(t, notify.Message{Level: notify.LevelInfo, Text: "Cart cleared"}, recorder.Last())
	repo.AssertExpectations(t)
}

func TestCartOperations_RequireCartID(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(t, repo, notify.NewRecorder())
	ctx := context.Background()

	_, err := svc.GetCart(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(ctx, "", "1", 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = svc.Clear(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
