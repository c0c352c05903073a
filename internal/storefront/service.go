// Package storefront composes the cart, order, product, and user stores into
// the externally reachable operation set. Every operation takes the verified
// caller identity; the ownership rule ("a caller may only mutate their own
// resources unless admin") is enforced here, once, rather than in each store.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

// CartRepository is the cart slice of the document store.
type CartRepository interface {
	Insert(ctx context.Context, entry *domain.CartEntry) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.CartEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CartEntry, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

// OrderRepository is the order slice of the document store.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, ownerID uuid.UUID, key string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Order, error)
}

// ProductRepository is the read side of the product catalog.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository resolves order owners for the admin listing.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Service holds no state of its own; it delegates to the repositories passed
// at construction.
type Service struct {
	carts    CartRepository
	orders   OrderRepository
	products ProductRepository
	users    UserRepository
	logger   *slog.Logger
}

func NewService(
	carts CartRepository,
	orders OrderRepository,
	products ProductRepository,
	users UserRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		carts:    carts,
		orders:   orders,
		products: products,
		users:    users,
		logger:   logger,
	}
}

// AddItem creates a cart entry owned by the caller. The owner is always the
// authenticated identity, never client input. Adding a product already in
// the cart creates a second entry; entries are not merged.
func (s *Service) AddItem(ctx context.Context, caller domain.Identity, productID uuid.UUID, quantity int) (*domain.CartEntry, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	entry := &domain.CartEntry{
		ID:        uuid.New(),
		OwnerID:   caller.SubjectID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.carts.Insert(ctx, entry); err != nil {
		return nil, storeErr(err)
	}

	return entry, nil
}

// ListItems returns the caller's cart with products resolved concurrently
// against the catalog. An entry whose product has disappeared keeps a nil
// Product instead of failing the listing.
func (s *Service) ListItems(ctx context.Context, caller domain.Identity) ([]domain.ResolvedCartEntry, error) {
	entries, err := s.carts.ListByOwner(ctx, caller.SubjectID)
	if err != nil {
		return nil, storeErr(err)
	}

	resolved := make([]domain.ResolvedCartEntry, len(entries))
	g, ctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		resolved[i].CartEntry = entry
		g.Go(func() error {
			product, err := s.products.GetByID(ctx, entry.ProductID)
			if err != nil {
				if repository.IsNotFound(err) {
					return nil
				}
				return err
			}
			resolved[i].Product = product
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	return resolved, nil
}

// UpdateItemQuantity changes the quantity of a cart entry the caller owns.
func (s *Service) UpdateItemQuantity(ctx context.Context, caller domain.Identity, entryID uuid.UUID, quantity int) (*domain.CartEntry, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	entry, err := s.ownedEntry(ctx, caller, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.carts.UpdateQuantity(ctx, entryID, quantity); err != nil {
		return nil, storeErr(err)
	}

	entry.Quantity = quantity
	return entry, nil
}

// RemoveItem deletes a cart entry after verifying the caller owns it.
func (s *Service) RemoveItem(ctx context.Context, caller domain.Identity, entryID uuid.UUID) error {
	if _, err := s.ownedEntry(ctx, caller, entryID); err != nil {
		return err
	}

	if err := s.carts.Delete(ctx, entryID); err != nil {
		return storeErr(err)
	}

	return nil
}

// ownedEntry loads a cart entry and checks the ownership rule.
func (s *Service) ownedEntry(ctx context.Context, caller domain.Identity, entryID uuid.UUID) (*domain.CartEntry, error) {
	entry, err := s.carts.GetByID(ctx, entryID)
	if err != nil {
		return nil, storeErr(err)
	}

	if entry.OwnerID != caller.SubjectID && caller.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: cart entry belongs to another user", domain.ErrForbidden)
	}

	return entry, nil
}

// Checkout creates a pending order from the submitted cart snapshot. The
// total is recomputed from catalog prices; the client-submitted total is
// advisory and rejected on mismatch. A non-empty idempotency key makes the
// operation safe to retry: the same (owner, key) pair returns the order
// already created instead of creating a second one.
func (s *Service) Checkout(ctx context.Context, caller domain.Identity, lines []domain.LineItem, clientTotalCents int64, idempotencyKey string) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one line item", domain.ErrInvalidInput)
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: line quantity must be at least 1", domain.ErrInvalidInput)
		}
	}

	if idempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, caller.SubjectID, idempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !repository.IsNotFound(err) {
			return nil, storeErr(err)
		}
	}

	total, err := s.computeTotal(ctx, lines)
	if err != nil {
		return nil, err
	}

	if clientTotalCents != 0 && clientTotalCents != total {
		return nil, fmt.Errorf("%w: submitted total %d does not match catalog total %d",
			domain.ErrInvalidInput, clientTotalCents, total)
	}

	order := domain.NewOrder(caller.SubjectID, lines, total, idempotencyKey)
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, storeErr(err)
	}

	// Clearing the cart is a second store operation with no transaction
	// around the pair. If it fails the order still stands, so log and move
	// on rather than failing a checkout that already happened.
	if err := s.carts.DeleteByOwner(ctx, caller.SubjectID); err != nil {
		s.logger.WarnContext(ctx, "cart not cleared after checkout",
			"order_id", order.ID, "owner_id", caller.SubjectID, "error", err)
	}

	return order, nil
}

// computeTotal prices the line items from the catalog. Unlike ListItems, a
// dangling product here is a hard failure: an order must not freeze a price
// that no longer exists.
func (s *Service) computeTotal(ctx context.Context, lines []domain.LineItem) (int64, error) {
	var total int64
	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if repository.IsNotFound(err) {
				return 0, fmt.Errorf("%w: unknown product %s", domain.ErrInvalidInput, line.ProductID)
			}
			return 0, storeErr(err)
		}
		total += product.PriceCents * int64(line.Quantity)
	}

	return total, nil
}

// ListOrders returns the caller's own orders.
func (s *Service) ListOrders(ctx context.Context, caller domain.Identity) ([]domain.Order, error) {
	orders, err := s.orders.ListByOwner(ctx, caller.SubjectID)
	if err != nil {
		return nil, storeErr(err)
	}

	return orders, nil
}

// ListAllOrders returns every order with its owner's email resolved. A
// missing owner account leaves the email empty rather than failing the list.
func (s *Service) ListAllOrders(ctx context.Context) ([]domain.OrderWithOwner, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	resolved := make([]domain.OrderWithOwner, len(orders))
	g, ctx := errgroup.WithContext(ctx)
	for i, order := range orders {
		resolved[i].Order = order
		g.Go(func() error {
			owner, err := s.users.GetByID(ctx, order.OwnerID)
			if err != nil {
				if repository.IsNotFound(err) {
					return nil
				}
				return err
			}
			resolved[i].OwnerEmail = owner.Email
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, storeErr(err)
	}

	return resolved, nil
}

// UpdateOrderStatus moves an order along the status machine. The role gate
// has already established the caller is an admin; this validates only the
// transition itself.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next domain.Status) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := order.TransitionTo(next); err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return nil, storeErr(err)
	}

	return updated, nil
}

// ListProducts returns the public catalog.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	return products, nil
}

// DeleteProduct removes a catalog entry. Admin-only, enforced at the gate.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return storeErr(err)
	}

	return nil
}

// storeErr passes not-found through untouched and wraps everything else as
// a store availability failure. Nothing is retried here.
func storeErr(err error) error {
	if repository.IsNotFound(err) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
