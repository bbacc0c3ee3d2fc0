package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// Recorder is the identity of the user performing a procurement write,
// resolved by the populate-user stage.
type Recorder struct {
	UserID string
	Name   string
	Branch string
}

// ProcurementUseCase inventory ledger writes and reads. Every procurement
// event creates a fresh Produce row; rows are never merged by name.
type ProcurementUseCase struct {
	produceRepo repository.ProduceRepository
}

// NewProcurementUseCase builds the use case.
func NewProcurementUseCase(produceRepo repository.ProduceRepository) *ProcurementUseCase {
	return &ProcurementUseCase{produceRepo: produceRepo}
}

// Record persists a new procurement. The recorder's branch must match the
// target branch; the role check alone does not imply that.
func (uc *ProcurementUseCase) Record(rec Recorder, in dto.CreateProcurementRequest) (*dto.ProduceResponse, error) {
	if rec.Branch != in.Branch {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	produce := &entity.Produce{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Type:           in.Type,
		Stock:          in.Stock,
		Cost:           in.Cost,
		SalePrice:      in.SalePrice,
		DealerName:     in.DealerName,
		Contact:        in.Contact,
		Branch:         in.Branch,
		RecordedBy:     rec.UserID,
		RecordedByName: rec.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.produceRepo.Create(produce); err != nil {
		return nil, err
	}
	return ToProduceResponse(produce), nil
}

// GetByID returns one produce record or ErrNotFound.
func (uc *ProcurementUseCase) GetByID(id string) (*dto.ProduceResponse, error) {
	produce, err := uc.produceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produce == nil {
		return nil, domain.ErrNotFound
	}
	return ToProduceResponse(produce), nil
}

// List returns the inventory, optionally scoped to one branch, newest first.
func (uc *ProcurementUseCase) List(branch string) (*dto.ProduceListResponse, error) {
	produces, err := uc.produceRepo.List(branch)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProduceResponse, 0, len(produces))
	for _, p := range produces {
		out = append(out, *ToProduceResponse(p))
	}
	return &dto.ProduceListResponse{Count: len(out), Produces: out}, nil
}

// Update applies a partial update. Branch ownership is re-validated against
// the loaded record, not the request, since produce ids cross branch lines.
func (uc *ProcurementUseCase) Update(id string, rec Recorder, in dto.UpdateProcurementRequest) (*dto.ProduceResponse, error) {
	produce, err := uc.produceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produce == nil {
		return nil, domain.ErrNotFound
	}
	if rec.Branch != produce.Branch {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		produce.Name = *in.Name
	}
	if in.Type != nil {
		produce.Type = *in.Type
	}
	if in.Stock != nil {
		produce.Stock = *in.Stock
	}
	if in.Cost != nil {
		produce.Cost = *in.Cost
	}
	if in.DealerName != nil {
		produce.DealerName = *in.DealerName
	}
	if in.Contact != nil {
		produce.Contact = *in.Contact
	}
	if in.SalePrice != nil {
		produce.SalePrice = *in.SalePrice
	}
	produce.UpdatedAt = time.Now()

	if err := uc.produceRepo.Update(produce); err != nil {
		return nil, err
	}
	return ToProduceResponse(produce), nil
}

// OutOfStockAlerts returns items with stock <= 0, optionally per branch.
func (uc *ProcurementUseCase) OutOfStockAlerts(branch string) (*dto.StockAlertResponse, error) {
	items, err := uc.produceRepo.ListOutOfStock(branch)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProduceResponse, 0, len(items))
	for _, p := range items {
		out = append(out, *ToProduceResponse(p))
	}
	msg := "All items in stock"
	if len(out) > 0 {
		msg = fmt.Sprintf("%d items out of stock", len(out))
	}
	return &dto.StockAlertResponse{Count: len(out), Message: msg, Items: out}, nil
}

// ToProduceResponse maps a Produce entity to its client representation.
func ToProduceResponse(p *entity.Produce) *dto.ProduceResponse {
	if p == nil {
		return nil
	}
	return &dto.ProduceResponse{
		ID:             p.ID,
		Name:           p.Name,
		Type:           p.Type,
		Stock:          p.Stock,
		Cost:           p.Cost,
		SalePrice:      p.SalePrice,
		DealerName:     p.DealerName,
		Contact:        p.Contact,
		Branch:         p.Branch,
		RecordedBy:     p.RecordedBy,
		RecordedByName: p.RecordedByName,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
