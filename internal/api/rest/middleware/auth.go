// Package middleware implements the authorization gate: authenticate first,
// then check the role's permission, in that order.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Harshakar-official/storefront/internal/api/rest/response"
	"github.com/Harshakar-official/storefront/internal/authz"
	"github.com/Harshakar-official/storefront/internal/domain"
)

const bearerPrefix = "bearer"

const (
	unauthenticatedKind = "unauthenticated"
	invalidTokenKind    = "invalid_token"
	forbiddenKind       = "forbidden"
	internalKind        = "internal_error"
)

type identityContextKey struct{}

// TokenVerifier rebuilds an identity from a bearer token.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// Authenticate requires a bearer credential, verifies it, and binds the
// resulting identity to the request context for downstream handlers.
type Authenticate struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func NewAuthenticate(verifier TokenVerifier, logger *slog.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, logger: logger}
}

// Handler distinguishes a missing credential (unauthenticated) from one that
// fails verification (invalid token); both end the request with 401.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, http.StatusUnauthorized, unauthenticatedKind, "authorization header missing")
			return
		}

		tokenString, err := extractBearerToken(authHeader)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, unauthenticatedKind, "invalid authorization header format")
			return
		}

		identity, err := m.verifier.Verify(tokenString)
		if err != nil {
			m.logger.WarnContext(r.Context(), "token verification failed", "error", err)
			response.Error(w, http.StatusUnauthorized, invalidTokenKind, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// RequirePermission checks that the bound identity's role holds a
// permission. It must be composed after Authenticate; running it on a
// request without a bound identity is a programming error and panics.
type RequirePermission struct {
	authorizer authz.Authorizer
	resource   string
	action     string
	logger     *slog.Logger
}

func NewRequirePermission(authorizer authz.Authorizer, resource, action string, logger *slog.Logger) *RequirePermission {
	return &RequirePermission{
		authorizer: authorizer,
		resource:   resource,
		action:     action,
		logger:     logger,
	}
}

func (m *RequirePermission) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			panic("middleware: RequirePermission composed without Authenticate")
		}

		allowed, err := m.authorizer.Authorize(identity.Role, m.resource, m.action)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "permission check failed",
				"role", identity.Role, "resource", m.resource, "action", m.action, "error", err)
			response.Error(w, http.StatusInternalServerError, internalKind, "internal server error")
			return
		}

		if !allowed {
			response.Error(w, http.StatusForbidden, forbiddenKind, "access forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ContextWithIdentity binds a verified identity to ctx.
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the identity bound by Authenticate.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(domain.Identity)
	return identity, ok
}

// extractBearerToken pulls the token out of an Authorization header.
func extractBearerToken(authHeader string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
