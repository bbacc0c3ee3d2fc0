package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Low-stock threshold in tonnes. Items with 0 < stock < LowStockThreshold are
// reported as low stock; stock <= 0 is out of stock.
var LowStockThreshold = decimal.NewFromInt(10)

// Produce represents one inventory line item created by a procurement event.
// A new row is created per procurement; rows are never merged by name, so two
// rows may share (name, branch). Stock is decremented only by successful sale
// and credit-sale transactions and never goes negative.
type Produce struct {
	ID             string
	Name           string
	Type           string // variety, e.g. "Yellow Corn"
	Stock          decimal.Decimal // available tonnage
	Cost           decimal.Decimal // purchase cost per tonne
	SalePrice      decimal.Decimal
	DealerName     string
	Contact        string // dealer phone, 10-15 digits
	Branch         string
	RecordedBy     string // user id of the manager who recorded the procurement
	RecordedByName string // denormalized for listings
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OutOfStock reports whether the item has no sellable stock.
func (p *Produce) OutOfStock() bool {
	return !p.Stock.GreaterThan(decimal.Zero)
}

// LowStock reports whether the item is below the reorder threshold but not out.
func (p *Produce) LowStock() bool {
	return p.Stock.GreaterThan(decimal.Zero) && p.Stock.LessThan(LowStockThreshold)
}
