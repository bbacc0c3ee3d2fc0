package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCreditSaleRequest input for recording a credit sale.
type CreateCreditSaleRequest struct {
	BuyerName   string          `json:"buyerName"`
	NIN         string          `json:"nin"`
	Location    string          `json:"location"`
	Contact     string          `json:"contact"`
	AmountDue   decimal.Decimal `json:"amountDue"`
	ProduceName string          `json:"produceName"`
	Tonnage     decimal.Decimal `json:"tonnage"`
	DueDate     time.Time       `json:"dueDate"`
	Branch      string          `json:"branch"`
}

// UpdateCreditStatusRequest body for the status update endpoint.
type UpdateCreditStatusRequest struct {
	Status string `json:"status"`
}

// CreditSaleResponse one recorded credit sale.
type CreditSaleResponse struct {
	ID             string          `json:"id"`
	BuyerName      string          `json:"buyerName"`
	NIN            string          `json:"nin"`
	Location       string          `json:"location"`
	Contact        string          `json:"contact"`
	AmountDue      decimal.Decimal `json:"amountDue"`
	ProduceID      string          `json:"produce"`
	ProduceName    string          `json:"produceName"`
	Tonnage        decimal.Decimal `json:"tonnage"`
	SalesAgent     string          `json:"salesAgent"`
	SalesAgentName string          `json:"salesAgentName"`
	DueDate        time.Time       `json:"dueDate"`
	DispatchDate   time.Time       `json:"dispatchDate"`
	Branch         string          `json:"branch"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CreditSaleCreatedResponse body for POST /api/credit-sales.
type CreditSaleCreatedResponse struct {
	Message        string             `json:"message"`
	CreditSale     CreditSaleResponse `json:"creditSale"`
	RemainingStock decimal.Decimal    `json:"remainingStock"`
}

// CreditSaleListResponse body for GET /api/credit-sales.
type CreditSaleListResponse struct {
	Count        int                  `json:"count"`
	TotalPending decimal.Decimal      `json:"totalPending"`
	TotalOverdue decimal.Decimal      `json:"totalOverdue"`
	TotalDue     decimal.Decimal      `json:"totalDue"`
	CreditSales  []CreditSaleResponse `json:"creditSales"`
}

// AgentCreditSalesResponse body for the per-agent listing.
type AgentCreditSalesResponse struct {
	Count       int                  `json:"count"`
	TotalDue    decimal.Decimal      `json:"totalDue"`
	CreditSales []CreditSaleResponse `json:"creditSales"`
}

// CreditStatusUpdatedResponse body for PUT /api/credit-sales/:id/status.
type CreditStatusUpdatedResponse struct {
	Message    string             `json:"message"`
	CreditSale CreditSaleResponse `json:"creditSale"`
}

// OverdueAlertResponse body for the overdue alert endpoint.
type OverdueAlertResponse struct {
	Count        int                  `json:"count"`
	TotalOverdue decimal.Decimal      `json:"totalOverdue"`
	Overdue      []CreditSaleResponse `json:"overdue"`
}
