package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mtsdb/dropship-oasis-storefront/internal/domain"
	"github.com/mtsdb/dropship-oasis-storefront/pkg/errors"
)

// OrderRepository is an in-memory order store seeded with the demo order
// history. IDs continue the ORD-<n> sequence after the highest seeded ID.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
	nextID int64
}

// NewOrderRepository returns an order store seeded with the given orders.
func NewOrderRepository(seed []domain.Order) *OrderRepository {
	orders := make([]domain.Order, len(seed))
	copy(orders, seed)

	var next int64 = 1001
	for _, o := range orders {
		if n, ok := parseOrderID(o.ID); ok && n >= next {
			next = n + 1
		}
	}
	return &OrderRepository{orders: orders, nextID: next}
}

func parseOrderID(id string) (int64, bool) {
	raw, ok := strings.CutPrefix(id, "ORD-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, errors.NotFound("order", id)
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == order.ID {
			return errors.AlreadyExists("order", "id", order.ID)
		}
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now().UTC()
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, errors.NotFound("order", id)
}

func (r *OrderRepository) NextID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := fmt.Sprintf("ORD-%d", r.nextID)
	r.nextID++
	return id, nil
}
