package repository

import (
	"time"

	"github.com/slodongo/kgl-api/internal/domain/entity"
)

// SaleFilter narrows sale listings. Zero values mean "no filter".
type SaleFilter struct {
	Branch    string
	SaleType  string
	AgentID   string
	StartDate *time.Time
	EndDate   *time.Time
}

// SaleRepository is the persistence port for regular sales (append-only).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// List returns matching sales newest first.
	List(filter SaleFilter) ([]*entity.Sale, error)
}
