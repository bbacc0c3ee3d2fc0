package dto

import "github.com/shopspring/decimal"

// ReportPeriodRequest optional filters shared by report endpoints.
// Dates use the 2006-01-02 layout.
type ReportPeriodRequest struct {
	Branch    string `query:"branch"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// BranchTotals count/total pair grouped by branch or agent.
type BranchTotals struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// SalesSummary the company-wide money metrics. TotalRevenue recognizes
// regular sales plus paid credit; pending and overdue credit are outstanding.
type SalesSummary struct {
	TotalRegularSales  decimal.Decimal `json:"totalRegularSales"`
	TotalCreditSales   decimal.Decimal `json:"totalCreditSales"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	PendingCreditSales decimal.Decimal `json:"pendingCreditSales"`
	OverdueCreditSales decimal.Decimal `json:"overdueCreditSales"`
}

// SalesSummaryResponse body for GET /api/reports/sales-summary.
type SalesSummaryResponse struct {
	Summary           SalesSummary            `json:"summary"`
	SalesByBranch     map[string]BranchTotals `json:"salesByBranch"`
	SalesByAgent      map[string]BranchTotals `json:"salesByAgent"`
	TotalTransactions int                     `json:"totalTransactions"`
	RegularSalesCount int                     `json:"regularSalesCount"`
	CreditSalesCount  int                     `json:"creditSalesCount"`
}

// BranchReportSummary money metrics scoped to one branch.
type BranchReportSummary struct {
	TotalRegularSales decimal.Decimal `json:"totalRegularSales"`
	TotalCreditSales  decimal.Decimal `json:"totalCreditSales"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	PendingCredit     decimal.Decimal `json:"pendingCredit"`
	OverdueCredit     decimal.Decimal `json:"overdueCredit"`
}

// InventoryCounts stock bucket counts for the branch report.
type InventoryCounts struct {
	TotalItems int `json:"totalItems"`
	OutOfStock int `json:"outOfStock"`
	LowStock   int `json:"lowStock"`
}

// TransactionCounts volumes for the branch report.
type TransactionCounts struct {
	RegularSalesCount int `json:"regularSalesCount"`
	CreditSalesCount  int `json:"creditSalesCount"`
	TotalTransactions int `json:"totalTransactions"`
}

// BranchReportResponse body for GET /api/reports/branch-report.
type BranchReportResponse struct {
	Branch       string              `json:"branch"`
	Summary      BranchReportSummary `json:"summary"`
	Inventory    InventoryCounts     `json:"inventory"`
	Transactions TransactionCounts   `json:"transactions"`
}

// InventoryReportSummary counts and valuation for the inventory report.
type InventoryReportSummary struct {
	TotalItems      int             `json:"totalItems"`
	OutOfStock      int             `json:"outOfStock"`
	LowStock        int             `json:"lowStock"`
	AdequateStock   int             `json:"adequateStock"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	OutOfStockValue decimal.Decimal `json:"outOfStockValue"`
}

// InventoryBuckets the items partitioned by stock level.
type InventoryBuckets struct {
	OutOfStock    []ProduceResponse `json:"outOfStock"`
	LowStock      []ProduceResponse `json:"lowStock"`
	AdequateStock []ProduceResponse `json:"adequateStock"`
}

// InventoryReportResponse body for GET /api/reports/inventory.
type InventoryReportResponse struct {
	Summary InventoryReportSummary `json:"summary"`
	Items   InventoryBuckets       `json:"items"`
}

// AgentPerformance per-agent tallies across both sale types.
type AgentPerformance struct {
	Name              string          `json:"name"`
	RegularSalesCount int             `json:"regularSalesCount"`
	RegularSalesTotal decimal.Decimal `json:"regularSalesTotal"`
	CreditSalesCount  int             `json:"creditSalesCount"`
	CreditSalesTotal  decimal.Decimal `json:"creditSalesTotal"`
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalTransactions int             `json:"totalTransactions"`
}

// AgentPerformanceResponse body for GET /api/reports/agent-performance,
// sorted descending by TotalSales.
type AgentPerformanceResponse struct {
	Count       int                `json:"count"`
	Performance []AgentPerformance `json:"performance"`
}
