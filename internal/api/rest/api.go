// Package rest wires the storefront handlers and the authorization gate
// into an HTTP mux.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/Harshakar-official/storefront/internal/api/rest/handler"
	"github.com/Harshakar-official/storefront/internal/api/rest/middleware"
	"github.com/Harshakar-official/storefront/internal/authz"
)

// RouterConfig carries everything NewMux needs.
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler

	Authenticate *middleware.Authenticate
	Authorizer   authz.Authorizer
	Logger       *slog.Logger
}

// NewMux builds the route table. Protected routes compose the gate in the
// required order: Authenticate first, then the role permission check.
func NewMux(cfg *RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	guard := func(resource, action string, h http.HandlerFunc) http.Handler {
		perm := middleware.NewRequirePermission(cfg.Authorizer, resource, action, cfg.Logger)
		return cfg.Authenticate.Handler(perm.Handler(h))
	}

	// Public routes.
	mux.Handle("GET /health", http.HandlerFunc(handleHealthCheck))
	mux.Handle("POST /login", http.HandlerFunc(cfg.AuthHandler.Login))
	mux.Handle("POST /register", http.HandlerFunc(cfg.AuthHandler.Register))
	mux.Handle("GET /products", http.HandlerFunc(cfg.ProductHandler.List))

	// Customer routes.
	mux.Handle("POST /cart", guard(authz.ResourceCart, authz.ActionManage, cfg.CartHandler.AddItem))
	mux.Handle("GET /cart", guard(authz.ResourceCart, authz.ActionManage, cfg.CartHandler.ListItems))
	mux.Handle("PUT /cart/{id}", guard(authz.ResourceCart, authz.ActionManage, cfg.CartHandler.UpdateQuantity))
	mux.Handle("DELETE /cart/{id}", guard(authz.ResourceCart, authz.ActionManage, cfg.CartHandler.RemoveItem))
	mux.Handle("POST /orders", guard(authz.ResourceOrders, authz.ActionCreate, cfg.OrderHandler.Checkout))
	mux.Handle("GET /orders", guard(authz.ResourceOrders, authz.ActionRead, cfg.OrderHandler.ListOwn))

	// Admin routes.
	mux.Handle("GET /admin/orders", guard(authz.ResourceOrders, authz.ActionManage, cfg.OrderHandler.ListAll))
	mux.Handle("PUT /admin/orders/{id}", guard(authz.ResourceOrders, authz.ActionManage, cfg.OrderHandler.UpdateStatus))
	mux.Handle("DELETE /products/{id}", guard(authz.ResourceProducts, authz.ActionManage, cfg.ProductHandler.Delete))

	return mux
}

// handleHealthCheck returns a basic health status.
func handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
