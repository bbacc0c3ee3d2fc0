package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTypeRegular is the only sale type stored in the sales collection;
// deferred-payment transactions live in credit_sales.
const SaleTypeRegular = "regular"

// Sale records an immediate-payment transaction. Immutable once created.
// ProduceName and SalesAgentName are copied at write time so later edits to
// Produce or User never alter the historical record.
type Sale struct {
	ID             string
	ProduceID      string
	ProduceName    string
	Tonnage        decimal.Decimal
	AmountPaid     decimal.Decimal
	BuyerName      string
	SalesAgent     string // user id
	SalesAgentName string
	Branch         string
	SaleType       string // always "regular"
	CreatedAt      time.Time
}
