package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartEntry is one owner's requested quantity of one product, prior to
// checkout. OwnerID is fixed from the authenticated identity at creation and
// never taken from client input. Duplicate (owner, product) rows are allowed;
// adding the same product twice creates a second entry rather than merging.
type CartEntry struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ResolvedCartEntry is a CartEntry joined against the product catalog.
// Product is nil when the referenced product no longer exists; a dangling
// reference degrades the single entry, not the whole listing.
type ResolvedCartEntry struct {
	CartEntry
	Product *Product `json:"product"`
}
