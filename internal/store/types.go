// Package store persists the four writable record families and the import
// log in PostgreSQL, and serves the read-only client/product lookups the
// import pipeline depends on.
package store

import (
	"time"

	"github.com/google/uuid"
)

// CountryUnspecified is the sentinel stored when a client row carries no
// country column.
const CountryUnspecified = "unspecified"

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// ParseMovementType normalizes a cell value to a movement direction.
// Only explicit outbound spellings map to MovementOut; everything else,
// including the empty string, defaults to MovementIn.
func ParseMovementType(s string) MovementType {
	switch {
	case s == "out" || s == "sortie" || s == "Sortie" || s == "OUT":
		return MovementOut
	default:
		return MovementIn
	}
}

// Client is a customer record. Orders reference clients by ID.
type Client struct {
	ID      uuid.UUID
	Name    string
	Country string
	City    string
	Email   string
	Phone   string
}

// Product is a catalog record. The import pipeline only ever looks
// products up by exact name; it never creates them.
type Product struct {
	ID         uuid.UUID
	Name       string
	PricePerKg float64
}

// OrderLine is one product position of an order.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  float64
	UnitPrice float64
}

// Order is a sales order with its lines.
type Order struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Status      string
	TotalAmount float64
	Currency    string
	CreatedAt   time.Time
	Lines       []OrderLine
}

// ProductionEntry records one production run of a product.
type ProductionEntry struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  float64
	Date      time.Time
	Shift     string
	Quality   string
}

// StockEntry records one stock movement of a product.
type StockEntry struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  float64
	Type      MovementType
	Reason    string
	Date      time.Time
}

// ImportRecord is one line of the import log: which file was imported as
// which dataset, with the resulting counters.
type ImportRecord struct {
	ID         uuid.UUID `json:"id"`
	Dataset    string    `json:"dataset"`
	FileName   string    `json:"fileName"`
	Imported   int       `json:"imported"`
	Errors     int       `json:"errors"`
	Skipped    int       `json:"skipped"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}
