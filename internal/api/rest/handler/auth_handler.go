package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/api/rest/response"
	"github.com/Harshakar-official/storefront/internal/domain"
)

// AccountService covers login and registration.
type AccountService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password string) (*domain.User, error)
}

// TokenIssuer signs identity assertions for authenticated accounts.
type TokenIssuer interface {
	Issue(subjectID uuid.UUID, role domain.Role) (string, error)
}

// AuthHandler handles login and registration requests.
type AuthHandler struct {
	accounts AccountService
	tokens   TokenIssuer
	logger   *slog.Logger
}

func NewAuthHandler(accounts AccountService, tokens TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token together with the role so clients
// can pick the right view without decoding the token.
type LoginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	Role      domain.Role `json:"role"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "invalid_input", "email and password are required")
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			response.Error(w, http.StatusUnauthorized, "unauthenticated", "invalid email or password")
			return
		}
		h.logger.ErrorContext(r.Context(), "authentication failed", "error", err)
		writeDomainError(w, err)
		return
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "token issuance failed", "user_id", user.ID, "error", err)
		response.Error(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "user_id", user.ID)
	response.JSON(w, http.StatusOK, LoginResponse{
		Token:     tokenString,
		TokenType: "Bearer",
		Role:      user.Role,
	})
}

// Register handles POST /register. New accounts are always customers;
// admins are provisioned out of band.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			h.logger.ErrorContext(r.Context(), "registration failed", "error", err)
		}
		writeDomainError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "user_id", user.ID)
	response.JSON(w, http.StatusCreated, user)
}
