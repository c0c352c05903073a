package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/api/rest/response"
	"github.com/Harshakar-official/storefront/internal/domain"
)

// ProductService is the catalog slice of the storefront service.
type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ProductHandler serves the public catalog listing and the admin-only
// product removal.
type ProductHandler struct {
	products ProductService
	logger   *slog.Logger
}

func NewProductHandler(products ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// List handles GET /products. The catalog is public and needs no token.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list products failed", "error", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "product id must be a valid UUID")
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		h.logger.ErrorContext(r.Context(), "delete product failed", "product_id", id, "error", err)
		writeDomainError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
