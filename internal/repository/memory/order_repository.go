package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

type idemKey struct {
	ownerID uuid.UUID
	key     string
}

type OrderRepository struct {
	mu          sync.RWMutex
	orders      map[uuid.UUID]*domain.Order
	idempotency map[idemKey]uuid.UUID
	seq         map[uuid.UUID]int
	nextSeq     int
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:      make(map[uuid.UUID]*domain.Order),
		idempotency: make(map[idemKey]uuid.UUID),
		seq:         make(map[uuid.UUID]int),
	}
}

func (r *OrderRepository) Insert(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return &repository.ConflictError{Resource: "order", Key: "id", Value: order.ID.String()}
	}

	r.orders[order.ID] = order.Clone()
	r.seq[order.ID] = r.nextSeq
	r.nextSeq++
	if order.IdempotencyKey != "" {
		r.idempotency[idemKey{order.OwnerID, order.IdempotencyKey}] = order.ID
	}
	return nil
}

func (r *OrderRepository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*domain.Order) bool { return true }), nil
}

func (r *OrderRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(o *domain.Order) bool { return o.OwnerID == ownerID }), nil
}

func (r *OrderRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "order", Key: "id", Value: id.String()}
	}

	return order.Clone(), nil
}

func (r *OrderRepository) FindByIdempotencyKey(_ context.Context, ownerID uuid.UUID, key string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderID, ok := r.idempotency[idemKey{ownerID, key}]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "order", Key: "idempotency key", Value: key}
	}

	return r.orders[orderID].Clone(), nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "order", Key: "id", Value: id.String()}
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return order.Clone(), nil
}

// collect must be called with at least the read lock held.
func (r *OrderRepository) collect(keep func(*domain.Order) bool) []domain.Order {
	orders := make([]domain.Order, 0)
	for _, order := range r.orders {
		if keep(order) {
			orders = append(orders, *order.Clone())
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return r.seq[orders[i].ID] < r.seq[orders[j].ID]
	})

	return orders
}
