package storefront_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
	"github.com/Harshakar-official/storefront/internal/repository/memory"
	"github.com/Harshakar-official/storefront/internal/storefront"
)

type fixture struct {
	service  *storefront.Service
	users    *memory.UserRepository
	products *memory.ProductRepository
	carts    *memory.CartRepository
	orders   *memory.OrderRepository

	customer      domain.Identity
	otherCustomer domain.Identity
	admin         domain.Identity

	espresso domain.Product
	grinder  domain.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		users:    memory.NewUserRepository(),
		products: memory.NewProductRepository(),
		carts:    memory.NewCartRepository(),
		orders:   memory.NewOrderRepository(),
	}

	f.service = storefront.NewService(
		f.carts, f.orders, f.products, f.users,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	seedUser := func(email string, role domain.Role) domain.Identity {
		user := &domain.User{
			ID:        uuid.New(),
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, f.users.Create(ctx, user))
		return domain.Identity{SubjectID: user.ID, Role: role}
	}

	f.customer = seedUser("alice@example.com", domain.RoleCustomer)
	f.otherCustomer = seedUser("bob@example.com", domain.RoleCustomer)
	f.admin = seedUser("admin@example.com", domain.RoleAdmin)

	f.espresso = domain.Product{ID: uuid.New(), Name: "Espresso Machine", PriceCents: 24900, CreatedAt: time.Now().UTC()}
	f.grinder = domain.Product{ID: uuid.New(), Name: "Burr Grinder", PriceCents: 12900, CreatedAt: time.Now().UTC()}
	require.NoError(t, f.products.Create(ctx, &f.espresso))
	require.NoError(t, f.products.Create(ctx, &f.grinder))

	return f
}

func TestService_AddItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("should reject a quantity below one", func(t *testing.T) {
		_, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("should create an entry owned by the caller", func(t *testing.T) {
		entry, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, f.customer.SubjectID, entry.OwnerID)
		assert.Equal(t, 2, entry.Quantity)
	})

	t.Run("should not merge duplicate product entries", func(t *testing.T) {
		_, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 1)
		require.NoError(t, err)

		entries, err := f.service.ListItems(ctx, f.customer)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestService_ListItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 2)
	require.NoError(t, err)

	danglingID := uuid.New()
	_, err = f.service.AddItem(ctx, f.customer, danglingID, 1)
	require.NoError(t, err)

	entries, err := f.service.ListItems(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	t.Run("should resolve existing products", func(t *testing.T) {
		require.NotNil(t, entries[0].Product)
		assert.Equal(t, f.espresso.Name, entries[0].Product.Name)
		assert.Equal(t, f.espresso.PriceCents, entries[0].Product.PriceCents)
	})

	t.Run("should keep a nil product for a dangling reference", func(t *testing.T) {
		assert.Equal(t, danglingID, entries[1].ProductID)
		assert.Nil(t, entries[1].Product)
	})

	t.Run("should be idempotent without intervening mutation", func(t *testing.T) {
		again, err := f.service.ListItems(ctx, f.customer)
		require.NoError(t, err)
		assert.Equal(t, entries, again)
	})

	t.Run("should not see another user's entries", func(t *testing.T) {
		other, err := f.service.ListItems(ctx, f.otherCustomer)
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestService_RemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 1)
	require.NoError(t, err)

	t.Run("should forbid a non-owner", func(t *testing.T) {
		err := f.service.RemoveItem(ctx, f.otherCustomer, entry.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		entries, err := f.service.ListItems(ctx, f.customer)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("should let the owner remove it", func(t *testing.T) {
		require.NoError(t, f.service.RemoveItem(ctx, f.customer, entry.ID))

		entries, err := f.service.ListItems(ctx, f.customer)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should report a missing entry", func(t *testing.T) {
		err := f.service.RemoveItem(ctx, f.customer, uuid.New())
		assert.True(t, repository.IsNotFound(err))
	})
}

func TestService_UpdateItemQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry, err := f.service.AddItem(ctx, f.customer, f.grinder.ID, 1)
	require.NoError(t, err)

	t.Run("should reject a quantity below one", func(t *testing.T) {
		_, err := f.service.UpdateItemQuantity(ctx, f.customer, entry.ID, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("should forbid a non-owner", func(t *testing.T) {
		_, err := f.service.UpdateItemQuantity(ctx, f.otherCustomer, entry.ID, 3)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("should update for the owner", func(t *testing.T) {
		updated, err := f.service.UpdateItemQuantity(ctx, f.customer, entry.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Quantity)
	})
}

func TestService_Checkout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lines := []domain.LineItem{
		{ProductID: f.espresso.ID, Quantity: 2},
		{ProductID: f.grinder.ID, Quantity: 1},
	}
	wantTotal := f.espresso.PriceCents*2 + f.grinder.PriceCents

	t.Run("should reject an empty order", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, f.customer, nil, 0, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("should reject a line with zero quantity", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, f.customer, []domain.LineItem{{ProductID: f.espresso.ID}}, 0, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("should reject an unknown product", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, f.customer, []domain.LineItem{{ProductID: uuid.New(), Quantity: 1}}, 0, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("should reject a mismatched client total", func(t *testing.T) {
		_, err := f.service.Checkout(ctx, f.customer, lines, wantTotal-1, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("should recompute the total and clear the cart", func(t *testing.T) {
		_, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 2)
		require.NoError(t, err)

		order, err := f.service.Checkout(ctx, f.customer, lines, wantTotal, "")
		require.NoError(t, err)

		assert.Equal(t, f.customer.SubjectID, order.OwnerID)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, wantTotal, order.TotalCents)
		assert.Len(t, order.Lines, 2)

		entries, err := f.service.ListItems(ctx, f.customer)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("should accept an advisory total of zero", func(t *testing.T) {
		order, err := f.service.Checkout(ctx, f.customer, lines, 0, "")
		require.NoError(t, err)
		assert.Equal(t, wantTotal, order.TotalCents)
	})

	t.Run("should return the same order for a retried idempotency key", func(t *testing.T) {
		first, err := f.service.Checkout(ctx, f.customer, lines, 0, "retry-key")
		require.NoError(t, err)

		second, err := f.service.Checkout(ctx, f.customer, lines, 0, "retry-key")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		// A different owner with the same key gets their own order.
		third, err := f.service.Checkout(ctx, f.otherCustomer, lines, 0, "retry-key")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, third.ID)
	})
}

func TestService_UpdateOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.service.Checkout(ctx, f.customer,
		[]domain.LineItem{{ProductID: f.espresso.ID, Quantity: 1}}, 0, "")
	require.NoError(t, err)

	t.Run("should reject an invalid transition", func(t *testing.T) {
		_, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusShipped)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("should report a missing order", func(t *testing.T) {
		_, err := f.service.UpdateOrderStatus(ctx, uuid.New(), domain.StatusConfirmed)
		assert.True(t, repository.IsNotFound(err))
	})

	t.Run("should apply a valid transition", func(t *testing.T) {
		updated, err := f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, updated.Status)
	})
}

func TestService_ListAllOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Checkout(ctx, f.customer,
		[]domain.LineItem{{ProductID: f.espresso.ID, Quantity: 1}}, 0, "")
	require.NoError(t, err)
	_, err = f.service.Checkout(ctx, f.otherCustomer,
		[]domain.LineItem{{ProductID: f.grinder.ID, Quantity: 1}}, 0, "")
	require.NoError(t, err)

	orders, err := f.service.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "alice@example.com", orders[0].OwnerEmail)
	assert.Equal(t, "bob@example.com", orders[1].OwnerEmail)
}

func TestService_EndToEndScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Customer fills the cart.
	_, err := f.service.AddItem(ctx, f.customer, f.espresso.ID, 2)
	require.NoError(t, err)
	_, err = f.service.AddItem(ctx, f.customer, f.grinder.ID, 1)
	require.NoError(t, err)

	entries, err := f.service.ListItems(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Checkout from the cart snapshot.
	lines := make([]domain.LineItem, len(entries))
	for i, entry := range entries {
		lines[i] = domain.LineItem{ProductID: entry.ProductID, Quantity: entry.Quantity}
	}

	order, err := f.service.Checkout(ctx, f.customer, lines, 0, "")
	require.NoError(t, err)
	assert.Equal(t, f.espresso.PriceCents*2+f.grinder.PriceCents, order.TotalCents)
	assert.Len(t, order.Lines, 2)

	// Admin sees the pending order and confirms it.
	all, err := f.service.ListAllOrders(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusPending, all[0].Status)
	assert.Equal(t, "alice@example.com", all[0].OwnerEmail)

	_, err = f.service.UpdateOrderStatus(ctx, order.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	// Customer sees the confirmed status.
	own, err := f.service.ListOrders(ctx, f.customer)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, domain.StatusConfirmed, own[0].Status)
}
