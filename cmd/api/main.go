package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/Harshakar-official/storefront/internal/api/rest"
	"github.com/Harshakar-official/storefront/internal/api/rest/handler"
	"github.com/Harshakar-official/storefront/internal/api/rest/middleware"
	"github.com/Harshakar-official/storefront/internal/authn"
	"github.com/Harshakar-official/storefront/internal/authz"
	"github.com/Harshakar-official/storefront/internal/config"
	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository/memory"
	"github.com/Harshakar-official/storefront/internal/repository/postgres"
	"github.com/Harshakar-official/storefront/internal/storefront"
	"github.com/Harshakar-official/storefront/internal/token"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 20 * time.Second
	idleTimeout       = 60 * time.Second
)

type repositories struct {
	users     storefront.UserRepository
	authUsers authn.UserRepository
	products  storefront.ProductRepository
	carts     storefront.CartRepository
	orders    storefront.OrderRepository
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger.Info("api_starting")

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	codec, err := token.NewCodec(token.FromBase64Env(cfg.SigningKeyEnv), cfg.TokenIssuer, cfg.TokenTTL)
	if err != nil {
		logger.Error("token_codec_init_failed", "error", err)
		os.Exit(1)
	}

	authorizer, err := authz.NewRoleAuthorizer()
	if err != nil {
		logger.Error("authorizer_init_failed", "error", err)
		os.Exit(1)
	}

	repos, cleanup, err := initRepositories(cfg, logger)
	if err != nil {
		logger.Error("store_init_failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	accounts := authn.NewService(repos.authUsers)
	service := storefront.NewService(repos.carts, repos.orders, repos.products, repos.users, logger)

	mux := rest.NewMux(&rest.RouterConfig{
		AuthHandler:    handler.NewAuthHandler(accounts, codec, logger),
		ProductHandler: handler.NewProductHandler(service, logger),
		CartHandler:    handler.NewCartHandler(service, logger),
		OrderHandler:   handler.NewOrderHandler(service, logger),
		Authenticate:   middleware.NewAuthenticate(codec, logger),
		Authorizer:     authorizer,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	logger.Info("api_listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("api_serve_failed", "error", err)
		os.Exit(1)
	}
}

// initRepositories selects the postgres store when a DSN is configured and
// falls back to the seeded in-memory store otherwise.
func initRepositories(cfg *config.Config, logger *slog.Logger) (*repositories, func(), error) {
	if cfg.DatabaseDSN == "" {
		logger.Info("store_selected", "store", "memory")
		repos, err := seededMemoryRepositories(logger)
		return repos, func() {}, err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("store_selected", "store", "postgres")
	users := postgres.NewUserRepository(pool)
	return &repositories{
		users:     users,
		authUsers: users,
		products:  postgres.NewProductRepository(pool),
		carts:     postgres.NewCartRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
	}, pool.Close, nil
}

// seededMemoryRepositories builds the in-memory store with demo accounts
// and a small catalog, for local development without a database.
func seededMemoryRepositories(logger *slog.Logger) (*repositories, error) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	products := memory.NewProductRepository()

	seedUsers := []struct {
		email    string
		password string
		role     domain.Role
	}{
		{"customer@example.com", "customerpass", domain.RoleCustomer},
		{"admin@example.com", "adminpass", domain.RoleAdmin},
	}

	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}

		user := &domain.User{
			ID:           uuid.New(),
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
			CreatedAt:    time.Now().UTC(),
		}
		if err := users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", su.email, err)
		}
		logger.Info("seeded_user", "email", su.email, "role", su.role)
	}

	seedProducts := []struct {
		name       string
		priceCents int64
	}{
		{"Espresso Machine", 24900},
		{"Pour-Over Kettle", 6900},
		{"Burr Grinder", 12900},
	}

	for _, sp := range seedProducts {
		product := &domain.Product{
			ID:         uuid.New(),
			Name:       sp.name,
			PriceCents: sp.priceCents,
			CreatedAt:  time.Now().UTC(),
		}
		if err := products.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("seed product %s: %w", sp.name, err)
		}
	}

	return &repositories{
		users:     users,
		authUsers: users,
		products:  products,
		carts:     memory.NewCartRepository(),
		orders:    memory.NewOrderRepository(),
	}, nil
}
