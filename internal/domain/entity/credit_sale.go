package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit sale payment statuses.
const (
	CreditStatusPending = "pending"
	CreditStatusPaid    = "paid"
	CreditStatusOverdue = "overdue"
)

// ValidCreditStatus reports whether s is a known payment status.
func ValidCreditStatus(s string) bool {
	switch s {
	case CreditStatusPending, CreditStatusPaid, CreditStatusOverdue:
		return true
	}
	return false
}

// CreditSale records a deferred-payment transaction. Append-only except for
// Status, which is changed only by an explicit update: nothing sweeps
// pending records to overdue when the due date passes, the overdue alert
// query computes that view from DueDate instead.
type CreditSale struct {
	ID             string
	BuyerName      string
	NIN            string // national ID, for credit verification
	Location       string
	Contact        string
	AmountDue      decimal.Decimal
	ProduceID      string
	ProduceName    string
	Tonnage        decimal.Decimal
	SalesAgent     string
	SalesAgentName string
	DueDate        time.Time
	DispatchDate   time.Time
	Branch         string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
