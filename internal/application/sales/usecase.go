package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// Agent is the identity of the user recording a transaction, resolved by the
// populate-user stage. Name is denormalized into the record at write time.
type Agent struct {
	UserID string
	Name   string
}

// SalesUseCase records regular and credit sales. Both workflows locate the
// produce by (name, branch), decrement its stock with a single conditional
// update and persist the transaction record in the same database
// transaction, so concurrent sales against one produce row can never
// oversell: the decrement commits only if stock >= tonnage at commit time.
type SalesUseCase struct {
	txRunner   TxRunner
	saleRepo   repository.SaleRepository
	creditRepo repository.CreditSaleRepository
}

// NewSalesUseCase builds the use case.
func NewSalesUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, creditRepo repository.CreditSaleRepository) *SalesUseCase {
	return &SalesUseCase{txRunner: txRunner, saleRepo: saleRepo, creditRepo: creditRepo}
}

// RecordSale creates a regular sale. Returns ErrNotFound when no produce
// matches (produceName, branch) and *domain.InsufficientStockError when the
// conditional decrement does not go through.
func (uc *SalesUseCase) RecordSale(ctx context.Context, agent Agent, in dto.CreateSaleRequest) (*dto.SaleCreatedResponse, error) {
	var out *dto.SaleCreatedResponse
	err := uc.txRunner.Run(ctx, func(
		produceRepo repository.ProduceRepository,
		saleRepo repository.SaleRepository,
		_ repository.CreditSaleRepository,
	) error {
		produce, remaining, err := sellStock(produceRepo, in.ProduceName, in.Branch, in.Tonnage)
		if err != nil {
			return err
		}

		sale := &entity.Sale{
			ID:             uuid.New().String(),
			ProduceID:      produce.ID,
			ProduceName:    produce.Name,
			Tonnage:        in.Tonnage,
			AmountPaid:     in.AmountPaid,
			BuyerName:      in.BuyerName,
			SalesAgent:     agent.UserID,
			SalesAgentName: agent.Name,
			Branch:         in.Branch,
			SaleType:       entity.SaleTypeRegular,
			CreatedAt:      time.Now(),
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		out = &dto.SaleCreatedResponse{
			Message:        "Sale recorded successfully",
			Sale:           *ToSaleResponse(sale),
			RemainingStock: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordCreditSale creates a credit sale with the same stock discipline as
// RecordSale. Status starts pending; dispatch date is the recording time.
func (uc *SalesUseCase) RecordCreditSale(ctx context.Context, agent Agent, in dto.CreateCreditSaleRequest) (*dto.CreditSaleCreatedResponse, error) {
	var out *dto.CreditSaleCreatedResponse
	err := uc.txRunner.Run(ctx, func(
		produceRepo repository.ProduceRepository,
		_ repository.SaleRepository,
		creditRepo repository.CreditSaleRepository,
	) error {
		produce, remaining, err := sellStock(produceRepo, in.ProduceName, in.Branch, in.Tonnage)
		if err != nil {
			return err
		}

		now := time.Now()
		cs := &entity.CreditSale{
			ID:             uuid.New().String(),
			BuyerName:      in.BuyerName,
			NIN:            in.NIN,
			Location:       in.Location,
			Contact:        in.Contact,
			AmountDue:      in.AmountDue,
			ProduceID:      produce.ID,
			ProduceName:    produce.Name,
			Tonnage:        in.Tonnage,
			SalesAgent:     agent.UserID,
			SalesAgentName: agent.Name,
			DueDate:        in.DueDate,
			DispatchDate:   now,
			Branch:         in.Branch,
			Status:         entity.CreditStatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := creditRepo.Create(cs); err != nil {
			return err
		}

		out = &dto.CreditSaleCreatedResponse{
			Message:        "Credit sale recorded successfully",
			CreditSale:     *ToCreditSaleResponse(cs),
			RemainingStock: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// sellStock locates the produce and applies the conditional decrement. On an
// insufficient-stock rejection the produce row is untouched and the loaded
// stock value is reported back as "available".
func sellStock(produceRepo repository.ProduceRepository, name, branch string, tonnage decimal.Decimal) (*entity.Produce, decimal.Decimal, error) {
	produce, err := produceRepo.GetByNameAndBranch(name, branch)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if produce == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}

	remaining, ok, err := produceRepo.DecrementStock(produce.ID, tonnage)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !ok {
		return nil, decimal.Zero, &domain.InsufficientStockError{
			Available: produce.Stock,
			Requested: tonnage,
		}
	}
	return produce, remaining, nil
}

// ListSales returns sales matching the filter with their amountPaid total.
func (uc *SalesUseCase) ListSales(filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	total := decimal.Zero
	for _, s := range sales {
		out = append(out, *ToSaleResponse(s))
		total = total.Add(s.AmountPaid)
	}
	return &dto.SaleListResponse{Count: len(out), TotalSales: total, Sales: out}, nil
}

// GetSale returns one sale or ErrNotFound.
func (uc *SalesUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return ToSaleResponse(sale), nil
}

// GetSaleEntity returns the raw sale entity, used by the receipt generator.
func (uc *SalesUseCase) GetSaleEntity(id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListCreditSales returns credit sales matching the filter with the pending,
// overdue and grand totals of amountDue.
func (uc *SalesUseCase) ListCreditSales(filter repository.CreditSaleFilter) (*dto.CreditSaleListResponse, error) {
	list, err := uc.creditRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreditSaleResponse, 0, len(list))
	totalPending, totalOverdue, totalDue := decimal.Zero, decimal.Zero, decimal.Zero
	for _, cs := range list {
		out = append(out, *ToCreditSaleResponse(cs))
		totalDue = totalDue.Add(cs.AmountDue)
		switch cs.Status {
		case entity.CreditStatusPending:
			totalPending = totalPending.Add(cs.AmountDue)
		case entity.CreditStatusOverdue:
			totalOverdue = totalOverdue.Add(cs.AmountDue)
		}
	}
	return &dto.CreditSaleListResponse{
		Count:        len(out),
		TotalPending: totalPending,
		TotalOverdue: totalOverdue,
		TotalDue:     totalDue,
		CreditSales:  out,
	}, nil
}

// ListAgentCreditSales returns one agent's credit sales with their total due.
func (uc *SalesUseCase) ListAgentCreditSales(agentID string, filter repository.CreditSaleFilter) (*dto.AgentCreditSalesResponse, error) {
	filter.AgentID = agentID
	list, err := uc.creditRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreditSaleResponse, 0, len(list))
	totalDue := decimal.Zero
	for _, cs := range list {
		out = append(out, *ToCreditSaleResponse(cs))
		totalDue = totalDue.Add(cs.AmountDue)
	}
	return &dto.AgentCreditSalesResponse{Count: len(out), TotalDue: totalDue, CreditSales: out}, nil
}

// UpdateCreditStatus sets the payment status. Transitions are unrestricted;
// any of the three values may follow any other. ErrInvalidStatus for unknown
// values, ErrNotFound for unknown ids.
func (uc *SalesUseCase) UpdateCreditStatus(id, status string) (*dto.CreditStatusUpdatedResponse, error) {
	if !entity.ValidCreditStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	cs, err := uc.creditRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CreditStatusUpdatedResponse{
		Message:    "Credit sale marked as " + status,
		CreditSale: *ToCreditSaleResponse(cs),
	}, nil
}

// OverdueAlerts returns credit sales logically overdue by date: status still
// pending or overdue and dueDate already past. Stored status is not changed;
// a record can read "pending" here until someone updates it explicitly.
func (uc *SalesUseCase) OverdueAlerts(branch string) (*dto.OverdueAlertResponse, error) {
	list, err := uc.creditRepo.ListDueBefore(time.Now(), branch)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreditSaleResponse, 0, len(list))
	total := decimal.Zero
	for _, cs := range list {
		out = append(out, *ToCreditSaleResponse(cs))
		total = total.Add(cs.AmountDue)
	}
	return &dto.OverdueAlertResponse{Count: len(out), TotalOverdue: total, Overdue: out}, nil
}

// ToSaleResponse maps a Sale entity to its client representation.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		ProduceID:      s.ProduceID,
		ProduceName:    s.ProduceName,
		Tonnage:        s.Tonnage,
		AmountPaid:     s.AmountPaid,
		BuyerName:      s.BuyerName,
		SalesAgent:     s.SalesAgent,
		SalesAgentName: s.SalesAgentName,
		Branch:         s.Branch,
		SaleType:       s.SaleType,
		CreatedAt:      s.CreatedAt,
	}
}

// ToCreditSaleResponse maps a CreditSale entity to its client representation.
func ToCreditSaleResponse(cs *entity.CreditSale) *dto.CreditSaleResponse {
	if cs == nil {
		return nil
	}
	return &dto.CreditSaleResponse{
		ID:             cs.ID,
		BuyerName:      cs.BuyerName,
		NIN:            cs.NIN,
		Location:       cs.Location,
		Contact:        cs.Contact,
		AmountDue:      cs.AmountDue,
		ProduceID:      cs.ProduceID,
		ProduceName:    cs.ProduceName,
		Tonnage:        cs.Tonnage,
		SalesAgent:     cs.SalesAgent,
		SalesAgentName: cs.SalesAgentName,
		DueDate:        cs.DueDate,
		DispatchDate:   cs.DispatchDate,
		Branch:         cs.Branch,
		Status:         cs.Status,
		CreatedAt:      cs.CreatedAt,
		UpdatedAt:      cs.UpdatedAt,
	}
}
