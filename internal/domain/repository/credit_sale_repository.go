package repository

import (
	"time"

	"github.com/slodongo/kgl-api/internal/domain/entity"
)

// CreditSaleFilter narrows credit-sale listings. Zero values mean "no filter".
type CreditSaleFilter struct {
	Branch    string
	Status    string
	AgentID   string
	StartDate *time.Time
	EndDate   *time.Time
}

// CreditSaleRepository is the persistence port for credit sales. Records are
// append-only except for the status field.
type CreditSaleRepository interface {
	Create(cs *entity.CreditSale) error
	GetByID(id string) (*entity.CreditSale, error)
	// UpdateStatus sets status and bumps updated_at. Returns the updated
	// record, or (nil, nil) when the id is unknown.
	UpdateStatus(id, status string) (*entity.CreditSale, error)
	// List returns matching credit sales newest first.
	List(filter CreditSaleFilter) ([]*entity.CreditSale, error)
	// ListDueBefore returns records with status in (pending, overdue) and
	// dueDate < cutoff, ordered by due date ascending. This is the computed
	// overdue view; it does not touch the stored status.
	ListDueBefore(cutoff time.Time, branch string) ([]*entity.CreditSale, error)
}
