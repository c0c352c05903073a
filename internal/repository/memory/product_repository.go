package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, *p)
	}

	// Stable listing order for callers and tests.
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})

	return products, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "product", Key: "id", Value: id.String()}
	}

	clone := *product
	return &clone, nil
}

func (r *ProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return &repository.NotFoundError{Resource: "product", Key: "id", Value: id.String()}
	}

	delete(r.products, id)
	return nil
}
