package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Harshakar-official/storefront/internal/api/rest/response"
	"github.com/Harshakar-official/storefront/internal/domain"
	"github.com/Harshakar-official/storefront/internal/repository"
)

// writeDomainError maps the storefront error taxonomy to HTTP. Every branch
// surfaces a stable kind; unknown errors fall through to a 500 without
// leaking internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		response.Error(w, http.StatusUnauthorized, "unauthenticated", "authentication failed")
	case errors.Is(err, domain.ErrInvalidToken):
		response.Error(w, http.StatusUnauthorized, "invalid_token", "invalid token")
	case errors.Is(err, domain.ErrForbidden):
		response.Error(w, http.StatusForbidden, "forbidden", "access forbidden")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidTransition):
		response.Error(w, http.StatusBadRequest, "invalid_input", trimKind(err))
	case repository.IsNotFound(err):
		response.Error(w, http.StatusNotFound, "not_found", err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "store_unavailable", "internal server error")
	}
}

// trimKind strips the sentinel prefix ("storefront: invalid input: ...")
// down to the human half of the message.
func trimKind(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrInvalidInput, domain.ErrInvalidTransition} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
