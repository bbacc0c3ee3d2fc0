package repository

import (
	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/domain/entity"
)

// ProduceRepository is the persistence port for the inventory ledger.
type ProduceRepository interface {
	Create(produce *entity.Produce) error
	GetByID(id string) (*entity.Produce, error)
	// GetByNameAndBranch resolves the (name, branch) lookup used by the sale
	// workflows. Names are only unique-enough in practice: when duplicates
	// exist the oldest row wins (first match by creation time).
	GetByNameAndBranch(name, branch string) (*entity.Produce, error)
	Update(produce *entity.Produce) error
	// DecrementStock subtracts tonnage from the row's stock as a single
	// conditional update: it commits only if current stock >= tonnage.
	// Returns the remaining stock and ok=false (no state change) when the
	// stock was insufficient at commit time.
	DecrementStock(id string, tonnage decimal.Decimal) (remaining decimal.Decimal, ok bool, err error)
	// List returns produce records newest first; branch may be empty for all.
	List(branch string) ([]*entity.Produce, error)
	// ListByName orders by name ascending, for the inventory report.
	ListByName(branch string) ([]*entity.Produce, error)
	// ListOutOfStock returns records with stock <= 0, newest first.
	ListOutOfStock(branch string) ([]*entity.Produce, error)
}
