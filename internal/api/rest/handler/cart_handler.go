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

// CartService is the cart slice of the storefront service.
type CartService interface {
	AddItem(ctx context.Context, caller domain.Identity, productID uuid.UUID, quantity int) (*domain.CartEntry, error)
	ListItems(ctx context.Context, caller domain.Identity) ([]domain.ResolvedCartEntry, error)
	UpdateItemQuantity(ctx context.Context, caller domain.Identity, entryID uuid.UUID, quantity int) (*domain.CartEntry, error)
	RemoveItem(ctx context.Context, caller domain.Identity, entryID uuid.UUID) error
}

// CartHandler handles the /cart routes. All of them run behind the
// authorization gate, so a missing identity in context is a routing bug.
type CartHandler struct {
	cart   CartService
	logger *slog.Logger
}

func NewCartHandler(cart CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, logger: logger}
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// AddItem handles POST /cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	if req.ProductID == uuid.Nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "product_id is required")
		return
	}

	entry, err := h.cart.AddItem(r.Context(), caller, req.ProductID, req.Quantity)
	if err != nil {
		h.logError(r, "add cart item failed", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, entry)
}

// ListItems handles GET /cart.
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	entries, err := h.cart.ListItems(r.Context(), caller)
	if err != nil {
		h.logError(r, "list cart failed", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entries)
}

// UpdateQuantity handles PUT /cart/{id}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "entry id must be a valid UUID")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	entry, err := h.cart.UpdateItemQuantity(r.Context(), caller, entryID, req.Quantity)
	if err != nil {
		h.logError(r, "update cart item failed", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, entry)
}

// RemoveItem handles DELETE /cart/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "entry id must be a valid UUID")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), caller, entryID); err != nil {
		h.logError(r, "remove cart item failed", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "item removed from cart"})
}

func (h *CartHandler) logError(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, "error", err)
}
