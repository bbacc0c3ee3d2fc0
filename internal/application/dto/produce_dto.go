package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProcurementRequest input for recording a procurement event.
type CreateProcurementRequest struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Stock      decimal.Decimal `json:"stock"`
	Cost       decimal.Decimal `json:"cost"`
	DealerName string          `json:"dealerName"`
	Branch     string          `json:"branch"`
	Contact    string          `json:"contact"`
	SalePrice  decimal.Decimal `json:"salePrice"`
}

// UpdateProcurementRequest partial update; nil fields are left unchanged.
type UpdateProcurementRequest struct {
	Name       *string          `json:"name"`
	Type       *string          `json:"type"`
	Stock      *decimal.Decimal `json:"stock"`
	Cost       *decimal.Decimal `json:"cost"`
	DealerName *string          `json:"dealerName"`
	Contact    *string          `json:"contact"`
	SalePrice  *decimal.Decimal `json:"salePrice"`
}

// ProduceResponse one inventory line item.
type ProduceResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Stock          decimal.Decimal `json:"stock"`
	Cost           decimal.Decimal `json:"cost"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	DealerName     string          `json:"dealerName"`
	Contact        string          `json:"contact"`
	Branch         string          `json:"branch"`
	RecordedBy     string          `json:"recordedBy"`
	RecordedByName string          `json:"recordedByName"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ProcurementCreatedResponse body for POST /api/procurement.
type ProcurementCreatedResponse struct {
	Message string          `json:"message"`
	Produce ProduceResponse `json:"produce"`
}

// ProduceListResponse body for GET /api/procurement.
type ProduceListResponse struct {
	Count    int               `json:"count"`
	Produces []ProduceResponse `json:"produces"`
}

// StockAlertResponse body for the out-of-stock alert endpoint.
type StockAlertResponse struct {
	Count   int               `json:"count"`
	Message string            `json:"message"`
	Items   []ProduceResponse `json:"items"`
}
