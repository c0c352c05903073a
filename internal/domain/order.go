package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the order lifecycle state. Transitions are monotonic:
// pending -> confirmed -> shipped, with pending -> cancelled as the only
// abort path. Everything else is rejected.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a status string against the closed enumeration.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusShipped, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
	}
}

// LineItem is a product reference frozen into an order at checkout.
type LineItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Order is a checkout record. Line items and total are immutable after
// creation; status is the only mutable field, and only through TransitionTo.
type Order struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"owner_id"`
	Lines          []LineItem `json:"lines"`
	TotalCents     int64      `json:"total_cents"`
	Status         Status     `json:"status"`
	IdempotencyKey string     `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OrderWithOwner is an Order joined against the account that placed it, for
// the admin listing.
type OrderWithOwner struct {
	Order
	OwnerEmail string `json:"owner_email"`
}

// NewOrder creates a pending order owned by ownerID.
func NewOrder(ownerID uuid.UUID, lines []LineItem, totalCents int64, idempotencyKey string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Lines:          lines,
		TotalCents:     totalCents,
		Status:         StatusPending,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusShipped
	default:
		return false
	}
}

// TransitionTo moves the order to next, or fails with ErrInvalidTransition.
func (o *Order) TransitionTo(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a deep copy, so in-memory repositories never hand out
// aliased line item slices.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = make([]LineItem, len(o.Lines))
	copy(clone.Lines, o.Lines)
	return &clone
}
