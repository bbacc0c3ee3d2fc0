package sales_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/application/sales"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// ── in-memory fakes ──

type fakeProduceRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Produce
}

func newFakeProduceRepo() *fakeProduceRepo {
	return &fakeProduceRepo{items: map[string]*entity.Produce{}}
}

func (r *fakeProduceRepo) Create(p *entity.Produce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProduceRepo) GetByID(id string) (*entity.Produce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProduceRepo) GetByNameAndBranch(name, branch string) (*entity.Produce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *entity.Produce
	for _, p := range r.items {
		if p.Name != name || p.Branch != branch {
			continue
		}
		if oldest == nil || p.CreatedAt.Before(oldest.CreatedAt) {
			oldest = p
		}
	}
	if oldest == nil {
		return nil, nil
	}
	cp := *oldest
	return &cp, nil
}

func (r *fakeProduceRepo) Update(p *entity.Produce) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProduceRepo) DecrementStock(id string, tonnage decimal.Decimal) (decimal.Decimal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || p.Stock.LessThan(tonnage) {
		return decimal.Zero, false, nil
	}
	p.Stock = p.Stock.Sub(tonnage)
	return p.Stock, true, nil
}

func (r *fakeProduceRepo) list(branch string) []*entity.Produce {
	var out []*entity.Produce
	for _, p := range r.items {
		if branch == "" || p.Branch == branch {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeProduceRepo) List(branch string) ([]*entity.Produce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.list(branch)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProduceRepo) ListByName(branch string) ([]*entity.Produce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.list(branch)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProduceRepo) ListOutOfStock(branch string) ([]*entity.Produce, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Produce
	for _, p := range r.list(branch) {
		if p.OutOfStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales []*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.sales {
		if filter.Branch != "" && s.Branch != filter.Branch {
			continue
		}
		if filter.SaleType != "" && s.SaleType != filter.SaleType {
			continue
		}
		if filter.AgentID != "" && s.SalesAgent != filter.AgentID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSaleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sales)
}

type fakeCreditRepo struct {
	mu    sync.Mutex
	sales []*entity.CreditSale
}

func (r *fakeCreditRepo) Create(cs *entity.CreditSale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cs
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *fakeCreditRepo) GetByID(id string) (*entity.CreditSale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cs := range r.sales {
		if cs.ID == id {
			cp := *cs
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCreditRepo) UpdateStatus(id, status string) (*entity.CreditSale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cs := range r.sales {
		if cs.ID == id {
			cs.Status = status
			cs.UpdatedAt = time.Now()
			cp := *cs
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCreditRepo) List(filter repository.CreditSaleFilter) ([]*entity.CreditSale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CreditSale
	for _, cs := range r.sales {
		if filter.Branch != "" && cs.Branch != filter.Branch {
			continue
		}
		if filter.Status != "" && cs.Status != filter.Status {
			continue
		}
		if filter.AgentID != "" && cs.SalesAgent != filter.AgentID {
			continue
		}
		cp := *cs
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCreditRepo) ListDueBefore(cutoff time.Time, branch string) ([]*entity.CreditSale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CreditSale
	for _, cs := range r.sales {
		if cs.Status == entity.CreditStatusPaid {
			continue
		}
		if !cs.DueDate.Before(cutoff) {
			continue
		}
		if branch != "" && cs.Branch != branch {
			continue
		}
		cp := *cs
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// fakeTxRunner passes the fakes straight through; the repos do their own
// locking so the atomicity property still holds per call.
type fakeTxRunner struct {
	produce *fakeProduceRepo
	sale    *fakeSaleRepo
	credit  *fakeCreditRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.ProduceRepository,
	repository.SaleRepository,
	repository.CreditSaleRepository,
) error) error {
	return fn(r.produce, r.sale, r.credit)
}

// ── fixtures ──

func seedProduce(t *testing.T, repo *fakeProduceRepo, name, branch string, stock int64, createdAt time.Time) *entity.Produce {
	t.Helper()
	p := &entity.Produce{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      "Grain",
		Stock:     decimal.NewFromInt(stock),
		Cost:      decimal.NewFromInt(1000),
		SalePrice: decimal.NewFromInt(1500),
		Branch:    branch,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(p))
	return p
}

func newTestUseCase() (*sales.SalesUseCase, *fakeProduceRepo, *fakeSaleRepo, *fakeCreditRepo) {
	produceRepo := newFakeProduceRepo()
	saleRepo := &fakeSaleRepo{}
	creditRepo := &fakeCreditRepo{}
	runner := &fakeTxRunner{produce: produceRepo, sale: saleRepo, credit: creditRepo}
	return sales.NewSalesUseCase(runner, saleRepo, creditRepo), produceRepo, saleRepo, creditRepo
}

var testAgent = sales.Agent{UserID: "agent-1", Name: "Jane Sales"}

// ── tests ──

func TestRecordSale_DecrementsStockAndDenormalizes(t *testing.T) {
	uc, produceRepo, saleRepo, _ := newTestUseCase()
	p := seedProduce(t, produceRepo, "Maize", entity.Branch1, 100, time.Now())

	out, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
		ProduceName: "Maize",
		Tonnage:     decimal.NewFromInt(30),
		AmountPaid:  decimal.NewFromInt(45000),
		BuyerName:   "Acme Mills",
		Branch:      entity.Branch1,
	})
	require.NoError(t, err)

	assert.True(t, out.RemainingStock.Equal(decimal.NewFromInt(70)),
		"remaining stock should be 70, got %s", out.RemainingStock)
	assert.Equal(t, p.ID, out.Sale.ProduceID)
	assert.Equal(t, "Maize", out.Sale.ProduceName)
	assert.Equal(t, "agent-1", out.Sale.SalesAgent)
	assert.Equal(t, "Jane Sales", out.Sale.SalesAgentName)
	assert.Equal(t, entity.SaleTypeRegular, out.Sale.SaleType)
	assert.Equal(t, 1, saleRepo.count())

	stored, err := produceRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Stock.Equal(decimal.NewFromInt(70)))
}

func TestRecordSale_InsufficientStockLeavesNoRecord(t *testing.T) {
	uc, produceRepo, saleRepo, _ := newTestUseCase()
	p := seedProduce(t, produceRepo, "Beans", entity.Branch1, 5, time.Now())

	_, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
		ProduceName: "Beans",
		Tonnage:     decimal.NewFromInt(10),
		AmountPaid:  decimal.NewFromInt(1000),
		BuyerName:   "Acme Mills",
		Branch:      entity.Branch1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, insufficient.Requested.Equal(decimal.NewFromInt(10)))

	assert.Equal(t, 0, saleRepo.count(), "rejected sale must not create a record")
	stored, _ := produceRepo.GetByID(p.ID)
	assert.True(t, stored.Stock.Equal(decimal.NewFromInt(5)), "rejected sale must not touch stock")
}

func TestRecordSale_UnknownProduce(t *testing.T) {
	uc, _, saleRepo, _ := newTestUseCase()

	_, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
		ProduceName: "Cassava",
		Tonnage:     decimal.NewFromInt(1),
		BuyerName:   "Acme Mills",
		Branch:      entity.Branch1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, saleRepo.count())
}

func TestRecordSale_WrongBranchIsNotFound(t *testing.T) {
	uc, produceRepo, _, _ := newTestUseCase()
	seedProduce(t, produceRepo, "Maize", entity.Branch1, 100, time.Now())

	_, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
		ProduceName: "Maize",
		Tonnage:     decimal.NewFromInt(1),
		BuyerName:   "Acme Mills",
		Branch:      entity.Branch2,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_OldestRowWinsOnDuplicateNames(t *testing.T) {
	uc, produceRepo, _, _ := newTestUseCase()
	older := seedProduce(t, produceRepo, "Maize", entity.Branch1, 50, time.Now().Add(-time.Hour))
	newer := seedProduce(t, produceRepo, "Maize", entity.Branch1, 50, time.Now())

	out, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
		ProduceName: "Maize",
		Tonnage:     decimal.NewFromInt(10),
		AmountPaid:  decimal.NewFromInt(15000),
		BuyerName:   "Acme Mills",
		Branch:      entity.Branch1,
	})
	require.NoError(t, err)
	assert.Equal(t, older.ID, out.Sale.ProduceID)

	untouched, _ := produceRepo.GetByID(newer.ID)
	assert.True(t, untouched.Stock.Equal(decimal.NewFromInt(50)))
}

func TestRecordSale_ConcurrentSalesNeverOversell(t *testing.T) {
	uc, produceRepo, saleRepo, _ := newTestUseCase()
	p := seedProduce(t, produceRepo, "Maize", entity.Branch1, 10, time.Now())

	const attempts = 25
	var wg sync.WaitGroup
	var successes int64
	var mu sync.Mutex

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
				ProduceName: "Maize",
				Tonnage:     decimal.NewFromInt(1),
				AmountPaid:  decimal.NewFromInt(1500),
				BuyerName:   "Acme Mills",
				Branch:      entity.Branch1,
			})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, successes, "exactly the available tonnage may sell")
	assert.Equal(t, 10, saleRepo.count(), "one record per successful sale")

	stored, _ := produceRepo.GetByID(p.ID)
	assert.True(t, stored.Stock.IsZero(), "stock must land exactly at zero, got %s", stored.Stock)
}

func TestRecordCreditSale_StartsPendingWithDispatchDate(t *testing.T) {
	uc, produceRepo, _, creditRepo := newTestUseCase()
	seedProduce(t, produceRepo, "Rice", entity.Branch2, 40, time.Now())

	before := time.Now()
	out, err := uc.RecordCreditSale(context.Background(), testAgent, dto.CreateCreditSaleRequest{
		BuyerName:   "Okello Stores",
		NIN:         "CM1234567",
		Location:    "Gulu",
		Contact:     "0770123456",
		AmountDue:   decimal.NewFromInt(60000),
		ProduceName: "Rice",
		Tonnage:     decimal.NewFromInt(20),
		DueDate:     time.Now().Add(30 * 24 * time.Hour),
		Branch:      entity.Branch2,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CreditStatusPending, out.CreditSale.Status)
	assert.False(t, out.CreditSale.DispatchDate.Before(before))
	assert.True(t, out.RemainingStock.Equal(decimal.NewFromInt(20)))

	stored, err := creditRepo.GetByID(out.CreditSale.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Jane Sales", stored.SalesAgentName)
}

func TestRecordCreditSale_InsufficientStockLeavesNoRecord(t *testing.T) {
	uc, produceRepo, _, creditRepo := newTestUseCase()
	seedProduce(t, produceRepo, "Rice", entity.Branch2, 5, time.Now())

	_, err := uc.RecordCreditSale(context.Background(), testAgent, dto.CreateCreditSaleRequest{
		BuyerName:   "Okello Stores",
		NIN:         "CM1234567",
		Location:    "Gulu",
		Contact:     "0770123456",
		AmountDue:   decimal.NewFromInt(60000),
		ProduceName: "Rice",
		Tonnage:     decimal.NewFromInt(20),
		DueDate:     time.Now().Add(30 * 24 * time.Hour),
		Branch:      entity.Branch2,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	list, _ := creditRepo.List(repository.CreditSaleFilter{})
	assert.Empty(t, list)
}

func TestUpdateCreditStatus(t *testing.T) {
	uc, produceRepo, _, _ := newTestUseCase()
	seedProduce(t, produceRepo, "Rice", entity.Branch1, 40, time.Now())

	created, err := uc.RecordCreditSale(context.Background(), testAgent, dto.CreateCreditSaleRequest{
		BuyerName:   "Okello Stores",
		NIN:         "CM1234567",
		Location:    "Gulu",
		Contact:     "0770123456",
		AmountDue:   decimal.NewFromInt(60000),
		ProduceName: "Rice",
		Tonnage:     decimal.NewFromInt(10),
		DueDate:     time.Now().Add(24 * time.Hour),
		Branch:      entity.Branch1,
	})
	require.NoError(t, err)
	id := created.CreditSale.ID

	out, err := uc.UpdateCreditStatus(id, entity.CreditStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "Credit sale marked as paid", out.Message)
	assert.Equal(t, entity.CreditStatusPaid, out.CreditSale.Status)

	// Transitions are unrestricted, paid can go back to pending.
	out, err = uc.UpdateCreditStatus(id, entity.CreditStatusPending)
	require.NoError(t, err)
	assert.Equal(t, entity.CreditStatusPending, out.CreditSale.Status)

	_, err = uc.UpdateCreditStatus(id, "cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.UpdateCreditStatus("no-such-id", entity.CreditStatusPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOverdueAlerts_ComputedByDueDateNotStatus(t *testing.T) {
	uc, produceRepo, _, creditRepo := newTestUseCase()
	seedProduce(t, produceRepo, "Rice", entity.Branch1, 100, time.Now())

	now := time.Now()
	mk := func(buyer string, due time.Time, status string, amount int64) {
		require.NoError(t, creditRepo.Create(&entity.CreditSale{
			ID: uuid.New().String(), BuyerName: buyer, AmountDue: decimal.NewFromInt(amount),
			DueDate: due, Branch: entity.Branch1, Status: status,
		}))
	}
	mk("past-pending", now.Add(-48*time.Hour), entity.CreditStatusPending, 100)
	mk("past-overdue", now.Add(-24*time.Hour), entity.CreditStatusOverdue, 200)
	mk("past-paid", now.Add(-24*time.Hour), entity.CreditStatusPaid, 400)
	mk("future-pending", now.Add(24*time.Hour), entity.CreditStatusPending, 800)

	out, err := uc.OverdueAlerts("")
	require.NoError(t, err)

	assert.Equal(t, 2, out.Count, "paid and not-yet-due records are excluded")
	assert.True(t, out.TotalOverdue.Equal(decimal.NewFromInt(300)))
	require.Len(t, out.Overdue, 2)
	assert.Equal(t, "past-pending", out.Overdue[0].BuyerName, "soonest-due first")
	assert.Equal(t, entity.CreditStatusPending, out.Overdue[0].Status,
		"stored status is reported untouched")
}

func TestListCreditSales_Totals(t *testing.T) {
	uc, _, _, creditRepo := newTestUseCase()

	mk := func(status string, amount int64) {
		require.NoError(t, creditRepo.Create(&entity.CreditSale{
			ID: uuid.New().String(), AmountDue: decimal.NewFromInt(amount),
			Branch: entity.Branch1, Status: status, DueDate: time.Now(),
		}))
	}
	mk(entity.CreditStatusPending, 100)
	mk(entity.CreditStatusPending, 150)
	mk(entity.CreditStatusOverdue, 200)
	mk(entity.CreditStatusPaid, 400)

	out, err := uc.ListCreditSales(repository.CreditSaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Count)
	assert.True(t, out.TotalPending.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.TotalOverdue.Equal(decimal.NewFromInt(200)))
	assert.True(t, out.TotalDue.Equal(decimal.NewFromInt(850)))
}

func TestListSales_TotalAndFilters(t *testing.T) {
	uc, produceRepo, _, _ := newTestUseCase()
	seedProduce(t, produceRepo, "Maize", entity.Branch1, 100, time.Now())
	seedProduce(t, produceRepo, "Rice", entity.Branch2, 100, time.Now())

	sell := func(name, branch string, amount int64) {
		_, err := uc.RecordSale(context.Background(), testAgent, dto.CreateSaleRequest{
			ProduceName: name, Tonnage: decimal.NewFromInt(1),
			AmountPaid: decimal.NewFromInt(amount), BuyerName: "Acme Mills", Branch: branch,
		})
		require.NoError(t, err)
	}
	sell("Maize", entity.Branch1, 1000)
	sell("Maize", entity.Branch1, 2000)
	sell("Rice", entity.Branch2, 5000)

	all, err := uc.ListSales(repository.SaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	assert.True(t, all.TotalSales.Equal(decimal.NewFromInt(8000)))

	b1, err := uc.ListSales(repository.SaleFilter{Branch: entity.Branch1})
	require.NoError(t, err)
	assert.Equal(t, 2, b1.Count)
	assert.True(t, b1.TotalSales.Equal(decimal.NewFromInt(3000)))
}
