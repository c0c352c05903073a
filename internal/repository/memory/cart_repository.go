package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

type CartRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*domain.CartEntry
	seq     map[uuid.UUID]int
	nextSeq int
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		entries: make(map[uuid.UUID]*domain.CartEntry),
		seq:     make(map[uuid.UUID]int),
	}
}

func (r *CartRepository) Insert(_ context.Context, entry *domain.CartEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *entry
	r.entries[entry.ID] = &clone
	r.seq[entry.ID] = r.nextSeq
	r.nextSeq++
	return nil
}

// ListByOwner returns entries in insertion order; timestamps alone are not a
// total order at this resolution.
func (r *CartRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.CartEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.CartEntry, 0)
	for _, entry := range r.entries {
		if entry.OwnerID == ownerID {
			entries = append(entries, *entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return r.seq[entries[i].ID] < r.seq[entries[j].ID]
	})

	return entries, nil
}

func (r *CartRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.CartEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: id.String()}
	}

	clone := *entry
	return &clone, nil
}

func (r *CartRepository) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: id.String()}
	}

	entry.Quantity = quantity
	return nil
}

func (r *CartRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: id.String()}
	}

	delete(r.entries, id)
	delete(r.seq, id)
	return nil
}

func (r *CartRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.entries {
		if entry.OwnerID == ownerID {
			delete(r.entries, id)
			delete(r.seq, id)
		}
	}

	return nil
}
