package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/application/procurement"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// Viewer is the identity of the caller, used to scope branch-level reports:
// managers are forced onto their own branch, directors may see all.
type Viewer struct {
	Role   string
	Branch string
}

// ReportsUseCase read-only aggregation over sales, credit sales and
// inventory. The filtered record sets are loaded into memory and reduced
// there; at two-branch volumes that beats pushing the grouping into SQL and
// keeps the metrics in one place.
type ReportsUseCase struct {
	saleRepo    repository.SaleRepository
	creditRepo  repository.CreditSaleRepository
	produceRepo repository.ProduceRepository
}

// NewReportsUseCase builds the use case.
func NewReportsUseCase(
	saleRepo repository.SaleRepository,
	creditRepo repository.CreditSaleRepository,
	produceRepo repository.ProduceRepository,
) *ReportsUseCase {
	return &ReportsUseCase{saleRepo: saleRepo, creditRepo: creditRepo, produceRepo: produceRepo}
}

// SalesSummary aggregates company-wide sales. Revenue recognizes regular
// sales plus paid credit; pending and overdue credit stay outstanding.
func (uc *ReportsUseCase) SalesSummary(in dto.ReportPeriodRequest) (*dto.SalesSummaryResponse, error) {
	start, end, err := parsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	// Sales and credit sales are independent queries; fetch them in parallel.
	type salesResult struct {
		rows []*entity.Sale
		err  error
	}
	type creditResult struct {
		rows []*entity.CreditSale
		err  error
	}
	salesCh := make(chan salesResult, 1)
	creditCh := make(chan creditResult, 1)

	go func() {
		rows, err := uc.saleRepo.List(repository.SaleFilter{Branch: in.Branch, StartDate: start, EndDate: end})
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.creditRepo.List(repository.CreditSaleFilter{Branch: in.Branch, StartDate: start, EndDate: end})
		creditCh <- creditResult{rows, err}
	}()

	salesRes := <-salesCh
	creditRes := <-creditCh
	if salesRes.err != nil {
		return nil, fmt.Errorf("reports: sales: %w", salesRes.err)
	}
	if creditRes.err != nil {
		return nil, fmt.Errorf("reports: credit sales: %w", creditRes.err)
	}
	sales, creditSales := salesRes.rows, creditRes.rows

	totalRegular := decimal.Zero
	byBranch := map[string]dto.BranchTotals{}
	byAgent := map[string]dto.BranchTotals{}
	for _, s := range sales {
		totalRegular = totalRegular.Add(s.AmountPaid)

		b := byBranch[s.Branch]
		b.Count++
		b.Total = b.Total.Add(s.AmountPaid)
		byBranch[s.Branch] = b

		// Keyed by the name captured at sale time, so renamed or deleted
		// agents keep their historical rows.
		a := byAgent[s.SalesAgentName]
		a.Count++
		a.Total = a.Total.Add(s.AmountPaid)
		byAgent[s.SalesAgentName] = a
	}

	totalCredit, paidCredit, pendingCredit, overdueCredit := sumCreditByStatus(creditSales)

	return &dto.SalesSummaryResponse{
		Summary: dto.SalesSummary{
			TotalRegularSales:  totalRegular,
			TotalCreditSales:   totalCredit,
			TotalRevenue:       totalRegular.Add(paidCredit),
			PendingCreditSales: pendingCredit,
			OverdueCreditSales: overdueCredit,
		},
		SalesByBranch:     byBranch,
		SalesByAgent:      byAgent,
		TotalTransactions: len(sales) + len(creditSales),
		RegularSalesCount: len(sales),
		CreditSalesCount:  len(creditSales),
	}, nil
}

// BranchReport aggregates one branch. A manager with no branch filter gets
// their own branch; a manager asking for another branch gets ErrForbidden.
func (uc *ReportsUseCase) BranchReport(viewer Viewer, branch string) (*dto.BranchReportResponse, error) {
	if viewer.Role == entity.RoleManager {
		if branch == "" {
			branch = viewer.Branch
		} else if branch != viewer.Branch {
			return nil, domain.ErrForbidden
		}
	}

	sales, err := uc.saleRepo.List(repository.SaleFilter{Branch: branch})
	if err != nil {
		return nil, err
	}
	creditSales, err := uc.creditRepo.List(repository.CreditSaleFilter{Branch: branch})
	if err != nil {
		return nil, err
	}
	produce, err := uc.produceRepo.List(branch)
	if err != nil {
		return nil, err
	}

	totalRegular := decimal.Zero
	for _, s := range sales {
		totalRegular = totalRegular.Add(s.AmountPaid)
	}
	totalCredit, paidCredit, pendingCredit, overdueCredit := sumCreditByStatus(creditSales)

	outOfStock, lowStock := 0, 0
	for _, p := range produce {
		switch {
		case p.OutOfStock():
			outOfStock++
		case p.LowStock():
			lowStock++
		}
	}

	label := branch
	if label == "" {
		label = "all"
	}
	return &dto.BranchReportResponse{
		Branch: label,
		Summary: dto.BranchReportSummary{
			TotalRegularSales: totalRegular,
			TotalCreditSales:  totalCredit,
			TotalRevenue:      totalRegular.Add(paidCredit),
			PendingCredit:     pendingCredit,
			OverdueCredit:     overdueCredit,
		},
		Inventory: dto.InventoryCounts{
			TotalItems: len(produce),
			OutOfStock: outOfStock,
			LowStock:   lowStock,
		},
		Transactions: dto.TransactionCounts{
			RegularSalesCount: len(sales),
			CreditSalesCount:  len(creditSales),
			TotalTransactions: len(sales) + len(creditSales),
		},
	}, nil
}

// InventoryReport values the stock (sum of stock x cost) partitioned into
// out-of-stock, low-stock and adequate buckets.
func (uc *ReportsUseCase) InventoryReport(branch string) (*dto.InventoryReportResponse, error) {
	produce, err := uc.produceRepo.ListByName(branch)
	if err != nil {
		return nil, err
	}

	buckets := dto.InventoryBuckets{
		OutOfStock:    []dto.ProduceResponse{},
		LowStock:      []dto.ProduceResponse{},
		AdequateStock: []dto.ProduceResponse{},
	}
	totalValue, outValue := decimal.Zero, decimal.Zero
	for _, p := range produce {
		value := p.Stock.Mul(p.Cost)
		totalValue = totalValue.Add(value)
		resp := *procurement.ToProduceResponse(p)
		switch {
		case p.OutOfStock():
			buckets.OutOfStock = append(buckets.OutOfStock, resp)
			outValue = outValue.Add(value)
		case p.LowStock():
			buckets.LowStock = append(buckets.LowStock, resp)
		default:
			buckets.AdequateStock = append(buckets.AdequateStock, resp)
		}
	}

	return &dto.InventoryReportResponse{
		Summary: dto.InventoryReportSummary{
			TotalItems:      len(produce),
			OutOfStock:      len(buckets.OutOfStock),
			LowStock:        len(buckets.LowStock),
			AdequateStock:   len(buckets.AdequateStock),
			TotalValue:      totalValue,
			OutOfStockValue: outValue,
		},
		Items: buckets,
	}, nil
}

// AgentPerformance tallies each agent's counts and totals across both sale
// types, sorted descending by combined total. Managers with no explicit
// branch filter are scoped to their own branch.
func (uc *ReportsUseCase) AgentPerformance(viewer Viewer, in dto.ReportPeriodRequest) (*dto.AgentPerformanceResponse, error) {
	start, end, err := parsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	branch := in.Branch
	if branch == "" && viewer.Role == entity.RoleManager {
		branch = viewer.Branch
	}

	sales, err := uc.saleRepo.List(repository.SaleFilter{Branch: branch, StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}
	creditSales, err := uc.creditRepo.List(repository.CreditSaleFilter{Branch: branch, StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	perf := map[string]*dto.AgentPerformance{}
	get := func(agentID, name string) *dto.AgentPerformance {
		if p, ok := perf[agentID]; ok {
			return p
		}
		p := &dto.AgentPerformance{Name: name}
		perf[agentID] = p
		return p
	}

	for _, s := range sales {
		p := get(s.SalesAgent, s.SalesAgentName)
		p.RegularSalesCount++
		p.RegularSalesTotal = p.RegularSalesTotal.Add(s.AmountPaid)
	}
	for _, cs := range creditSales {
		p := get(cs.SalesAgent, cs.SalesAgentName)
		p.CreditSalesCount++
		p.CreditSalesTotal = p.CreditSalesTotal.Add(cs.AmountDue)
	}

	out := make([]dto.AgentPerformance, 0, len(perf))
	for _, p := range perf {
		p.TotalSales = p.RegularSalesTotal.Add(p.CreditSalesTotal)
		p.TotalTransactions = p.RegularSalesCount + p.CreditSalesCount
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalSales.Cmp(out[j].TotalSales); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})

	return &dto.AgentPerformanceResponse{Count: len(out), Performance: out}, nil
}

// sumCreditByStatus reduces credit sales into the grand total plus the
// paid/pending/overdue partitions of amountDue.
func sumCreditByStatus(creditSales []*entity.CreditSale) (total, paid, pending, overdue decimal.Decimal) {
	for _, cs := range creditSales {
		total = total.Add(cs.AmountDue)
		switch cs.Status {
		case entity.CreditStatusPaid:
			paid = paid.Add(cs.AmountDue)
		case entity.CreditStatusPending:
			pending = pending.Add(cs.AmountDue)
		case entity.CreditStatusOverdue:
			overdue = overdue.Add(cs.AmountDue)
		}
	}
	return total, paid, pending, overdue
}

// parsePeriod parses optional 2006-01-02 bounds. The end bound is inclusive
// of the whole day.
func parsePeriod(startDate, endDate string) (start, end *time.Time, err error) {
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, domain.ErrInvalidInput
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	return start, end, nil
}
