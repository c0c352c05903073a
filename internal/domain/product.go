package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog record. Cart entries and order line items reference
// it by id only; name and price are never copied into them.
type Product struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}
