package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) Insert(ctx context.Context, entry *domain.CartEntry) error {
	query := `INSERT INTO cart_entries (id, owner_id, product_id, quantity, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, entry.ID, entry.OwnerID, entry.ProductID, entry.Quantity, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cart entry: %w", err)
	}

	return nil
}

func (r *CartRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.CartEntry, error) {
	query := `SELECT id, owner_id, product_id, quantity, created_at
	          FROM cart_entries WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cart entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.CartEntry, 0)
	for rows.Next() {
		var e domain.CartEntry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.ProductID, &e.Quantity, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart entries: %w", err)
	}

	return entries, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CartEntry, error) {
	query := `SELECT id, owner_id, product_id, quantity, created_at FROM cart_entries WHERE id = $1`

	var e domain.CartEntry
	err := r.pool.QueryRow(ctx, query, id).Scan(&e.ID, &e.OwnerID, &e.ProductID, &e.Quantity, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: id.String()}
		}
		return nil, fmt.Errorf("retrieve cart entry %s: %w", id, err)
	}

	return &e, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `UPDATE cart_entries SET quantity = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("update cart entry %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: id.String()}
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cart_entries WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete cart entry %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return &repository.NotFoundError{Resource: "cart entry", Key: "id", Value: id.String()}
	}

	return nil
}

func (r *CartRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	query := `DELETE FROM cart_entries WHERE owner_id = $1`

	if _, err := r.pool.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("clear cart for owner %s: %w", ownerID, err)
	}

	return nil
}
