package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Harshakar-official/storefront/internal/api/rest/middleware"
	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

type mockCartService struct {
	mock.Mock
}

func (m *mockCartService) AddItem(ctx context.Context, caller domain.Identity, productID uuid.UUID, quantity int) (*domain.CartEntry, error) {
	args := m.Called(ctx, caller, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartEntry), args.Error(1)
}

func (m *mockCartService) ListItems(ctx context.Context, caller domain.Identity) ([]domain.ResolvedCartEntry, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResolvedCartEntry), args.Error(1)
}

func (m *mockCartService) UpdateItemQuantity(ctx context.Context, caller domain.Identity, entryID uuid.UUID, quantity int) (*domain.CartEntry, error) {
	args := m.Called(ctx, caller, entryID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartEntry), args.Error(1)
}

func (m *mockCartService) RemoveItem(ctx context.Context, caller domain.Identity, entryID uuid.UUID) error {
	args := m.Called(ctx, caller, entryID)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedRequest(method, target string, body any, identity domain.Identity) *http.Request {
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

func TestCartHandler_AddItem(t *testing.T) {
	identity := domain.Identity{SubjectID: uuid.New(), Role: domain.RoleCustomer}
	productID := uuid.New()

	testCases := map[string]struct {
		request        func() *http.Request
		setupMock      func(*mockCartService)
		expectedStatus int
	}{
		"should create a cart entry": {
			request: func() *http.Request {
				return authedRequest(http.MethodPost, "/cart",
					addItemRequest{ProductID: productID, Quantity: 2}, identity)
			},
			setupMock: func(m *mockCartService) {
				m.On("AddItem", mock.Anything, identity, productID, 2).
					Return(&domain.CartEntry{ID: uuid.New(), OwnerID: identity.SubjectID, ProductID: productID, Quantity: 2}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		"should reject a malformed body": {
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader([]byte("{")))
				return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
			},
			setupMock:      func(*mockCartService) {},
			expectedStatus: http.StatusBadRequest,
		},
		"should reject a missing product id": {
			request: func() *http.Request {
				return authedRequest(http.MethodPost, "/cart", addItemRequest{Quantity: 1}, identity)
			},
			setupMock:      func(*mockCartService) {},
			expectedStatus: http.StatusBadRequest,
		},
		"should map an invalid quantity to 400": {
			request: func() *http.Request {
				return authedRequest(http.MethodPost, "/cart",
					addItemRequest{ProductID: productID, Quantity: 0}, identity)
			},
			setupMock: func(m *mockCartService) {
				m.On("AddItem", mock.Anything, identity, productID, 0).
					Return(nil, domain.ErrInvalidInput)
			},
			expectedStatus: http.StatusBadRequest,
		},
		"should reject a request without a bound identity": {
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/cart", http.NoBody)
			},
			setupMock:      func(*mockCartService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		"should map a store failure to 500": {
			request: func() *http.Request {
				return authedRequest(http.MethodPost, "/cart",
					addItemRequest{ProductID: productID, Quantity: 1}, identity)
			},
			setupMock: func(m *mockCartService) {
				m.On("AddItem", mock.Anything, identity, productID, 1).
					Return(nil, domain.ErrStoreUnavailable)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			service := new(mockCartService)
			tc.setupMock(service)

			rec := httptest.NewRecorder()
			NewCartHandler(service, testLogger()).AddItem(rec, tc.request())

			assert.Equal(t, tc.expectedStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}
}

func TestCartHandler_RemoveItem(t *testing.T) {
	identity := domain.Identity{SubjectID: uuid.New(), Role: domain.RoleCustomer}
	entryID := uuid.New()

	testCases := map[string]struct {
		setupMock      func(*mockCartService)
		expectedStatus int
	}{
		"should remove an owned entry": {
			setupMock: func(m *mockCartService) {
				m.On("RemoveItem", mock.Anything, identity, entryID).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		"should map a foreign entry to 403": {
			setupMock: func(m *mockCartService) {
				m.On("RemoveItem", mock.Anything, identity, entryID).Return(domain.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		"should map a missing entry to 404": {
			setupMock: func(m *mockCartService) {
				m.On("RemoveItem", mock.Anything, identity, entryID).
					Return(&repository.NotFoundError{Resource: "cart entry", Key: "id", Value: entryID.String()})
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			service := new(mockCartService)
			tc.setupMock(service)

			req := authedRequest(http.MethodDelete, "/cart/"+entryID.String(), nil, identity)
			req.SetPathValue("id", entryID.String())

			rec := httptest.NewRecorder()
			NewCartHandler(service, testLogger()).RemoveItem(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			service.AssertExpectations(t)
		})
	}

	t.Run("should reject a non-uuid entry id", func(t *testing.T) {
		req := authedRequest(http.MethodDelete, "/cart/nope", nil, identity)
		req.SetPathValue("id", "nope")

		rec := httptest.NewRecorder()
		NewCartHandler(new(mockCartService), testLogger()).RemoveItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartHandler_ListItems(t *testing.T) {
	identity := domain.Identity{SubjectID: uuid.New(), Role: domain.RoleCustomer}
	product := domain.Product{ID: uuid.New(), Name: "Espresso Machine", PriceCents: 24900}
	entries := []domain.ResolvedCartEntry{
		{
			CartEntry: domain.CartEntry{ID: uuid.New(), OwnerID: identity.SubjectID, ProductID: product.ID, Quantity: 2},
			Product:   &product,
		},
	}

	service := new(mockCartService)
	service.On("ListItems", mock.Anything, identity).Return(entries, nil)

	rec := httptest.NewRecorder()
	NewCartHandler(service, testLogger()).ListItems(rec, authedRequest(http.MethodGet, "/cart", nil, identity))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.ResolvedCartEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, product.Name, got[0].Product.Name)
	assert.Equal(t, 2, got[0].Quantity)
}
