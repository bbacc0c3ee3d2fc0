package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest input for recording a regular sale. The produce is
// located by (produceName, branch), not by id.
type CreateSaleRequest struct {
	ProduceName string          `json:"produceName"`
	Tonnage     decimal.Decimal `json:"tonnage"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	BuyerName   string          `json:"buyerName"`
	Branch      string          `json:"branch"`
}

// SaleResponse one recorded sale.
type SaleResponse struct {
	ID             string          `json:"id"`
	ProduceID      string          `json:"produce"`
	ProduceName    string          `json:"produceName"`
	Tonnage        decimal.Decimal `json:"tonnage"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	BuyerName      string          `json:"buyerName"`
	SalesAgent     string          `json:"salesAgent"`
	SalesAgentName string          `json:"salesAgentName"`
	Branch         string          `json:"branch"`
	SaleType       string          `json:"saleType"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// SaleCreatedResponse body for POST /api/sales.
type SaleCreatedResponse struct {
	Message        string          `json:"message"`
	Sale           SaleResponse    `json:"sale"`
	RemainingStock decimal.Decimal `json:"remainingStock"`
}

// SaleListResponse body for sale listings.
type SaleListResponse struct {
	Count      int             `json:"count"`
	TotalSales decimal.Decimal `json:"totalSales"`
	Sales      []SaleResponse  `json:"sales"`
}
