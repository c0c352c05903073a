package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode line items: %w", err)
	}

	query := `INSERT INTO orders (id, owner_id, line_items, total_cents, status, idempotency_key, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		order.ID, order.OwnerID, lines, order.TotalCents, order.Status,
		order.IdempotencyKey, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT id, owner_id, line_items, total_cents, status, COALESCE(idempotency_key, ''), created_at, updated_at
	          FROM orders ORDER BY created_at`

	return r.queryOrders(ctx, query)
}

func (r *OrderRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error) {
	query := `SELECT id, owner_id, line_items, total_cents, status, COALESCE(idempotency_key, ''), created_at, updated_at
	          FROM orders WHERE owner_id = $1 ORDER BY created_at`

	return r.queryOrders(ctx, query, ownerID)
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, owner_id, line_items, total_cents, status, COALESCE(idempotency_key, ''), created_at, updated_at
	          FROM orders WHERE id = $1`

	order, err := r.scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &repository.NotFoundError{Resource: "order", Key: "id", Value: id.String()}
		}
		return nil, fmt.Errorf("retrieve order %s: %w", id, err)
	}

	return order, nil
}

func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, ownerID uuid.UUID, key string) (*domain.Order, error) {
	query := `SELECT id, owner_id, line_items, total_cents, status, COALESCE(idempotency_key, ''), created_at, updated_at
	          FROM orders WHERE owner_id = $1 AND idempotency_key = $2`

	order, err := r.scanOrder(r.pool.QueryRow(ctx, query, ownerID, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &repository.NotFoundError{Resource: "order", Key: "idempotency key", Value: key}
		}
		return nil, fmt.Errorf("retrieve order by idempotency key: %w", err)
	}

	return order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error) {
	query := `UPDATE orders SET status = $2, updated_at = now()
	          WHERE id = $1
	          RETURNING id, owner_id, line_items, total_cents, status, COALESCE(idempotency_key, ''), created_at, updated_at`

	order, err := r.scanOrder(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &repository.NotFoundError{Resource: "order", Key: "id", Value: id.String()}
		}
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	return order, nil
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order domain.Order
		lines []byte
	)

	err := row.Scan(&order.ID, &order.OwnerID, &lines, &order.TotalCents,
		&order.Status, &order.IdempotencyKey, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lines, &order.Lines); err != nil {
		return nil, fmt.Errorf("decode line items for order %s: %w", order.ID, err)
	}

	return &order, nil
}
