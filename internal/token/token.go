// Package token issues and verifies the signed identity assertions carried
// as bearer credentials. Tokens are stateless: everything needed to rebuild
// the identity is inside the token, nothing is kept server-side, and there is
// no revocation list; a token is valid until natural expiry.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Harshakar-official/storefront/internal/domain"
)

const DefaultTTL = time.Hour

// Claims carries the registered claim set plus the subject's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Codec signs and verifies identity tokens with a process-wide HMAC key.
type Codec struct {
	key    []byte
	issuer string
	ttl    time.Duration
}

// NewCodec resolves the signing key from src and returns a codec. TTL <= 0
// falls back to DefaultTTL.
func NewCodec(src KeySource, issuer string, ttl time.Duration) (*Codec, error) {
	key, err := src()
	if err != nil {
		return nil, fmt.Errorf("resolve signing key: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Codec{key: key, issuer: issuer, ttl: ttl}, nil
}

// Issue produces a signed token asserting subjectID and role for the
// configured validity window.
func (c *Codec) Issue(subjectID uuid.UUID, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: string(role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, claim shape, and expiry of a token and
// rebuilds the identity it asserts. Every failure mode, an expired token
// included, reports domain.ErrInvalidToken; the caller distinguishes a
// missing credential before ever reaching Verify.
func (c *Codec) Verify(tokenString string) (domain.Identity, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(_ *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: malformed subject", domain.ErrInvalidToken)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{
		SubjectID: subjectID,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
