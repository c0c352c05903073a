package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/api/rest/middleware"
	"github.com/Harshakar-official/storefront/internal/api/rest/response"
	"github.com/Harshakar-official/storefront/internal/domain"
)

// IdempotencyKeyHeader lets retried checkouts reuse an already-created
// order instead of double-creating.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderService is the order slice of the storefront service.
type OrderService interface {
	Checkout(ctx context.Context, caller domain.Identity, lines []domain.LineItem, clientTotalCents int64, idempotencyKey string) (*domain.Order, error)
	ListOrders(ctx context.Context, caller domain.Identity) ([]domain.Order, error)
	ListAllOrders(ctx context.Context) ([]domain.OrderWithOwner, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next domain.Status) (*domain.Order, error)
}

// OrderHandler handles checkout, the customer order listing, and the admin
// order routes.
type OrderHandler struct {
	orders OrderService
	logger *slog.Logger
}

func NewOrderHandler(orders OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

type checkoutRequest struct {
	Lines      []domain.LineItem `json:"lines"`
	TotalCents int64             `json:"total_cents"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// Checkout handles POST /orders.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	order, err := h.orders.Checkout(r.Context(), caller, req.Lines, req.TotalCents, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "checkout failed", "owner_id", caller.SubjectID, "error", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, order)
}

// ListOwn handles GET /orders.
func (h *OrderHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), caller)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list own orders failed", "owner_id", caller.SubjectID, "error", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, orders)
}

// ListAll handles GET /admin/orders.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAllOrders(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list all orders failed", "error", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /admin/orders/{id}.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "order id must be a valid UUID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), orderID, status)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "update order status failed", "order_id", orderID, "error", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, order)
}
