package repository

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// OrderRepository stores placed orders
type OrderRepository interface {
	Save(ctx context.Context, order models.Order, idempotencyKey string) (models.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, bool)
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
	byKey  map[string]string
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
		byKey:  make(map[string]string),
	}
}

// Save stores the order and indexes it by idempotency key when one is given.
// If the key already belongs to a stored order, nothing is written and that order is returned.
func (r *InMemoryOrderRepository) Save(ctx context.Context, order models.Order, idempotencyKey string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if idempotencyKey != "" {
		if id, ok := r.byKey[idempotencyKey]; ok {
			return r.orders[id], nil
		}
		r.byKey[idempotencyKey] = order.ID
	}
	r.orders[order.ID] = order
	return order, nil
}

func (r *InMemoryOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Order, bool) {
	if key == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	order := r.orders[id]
	return &order, true
}
