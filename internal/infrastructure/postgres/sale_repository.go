package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, produce_id, produce_name, tonnage, amount_paid, buyer_name, sales_agent, sales_agent_name, branch, sale_type, created_at`

// SaleRepo implements SaleRepository over PostgreSQL. Sales are append-only;
// there is no update or delete path.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the sale persistence adapter. Pass pool or tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persists a sale record.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, produce_id, produce_name, tonnage, amount_paid, buyer_name, sales_agent, sales_agent_name, branch, sale_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProduceID, sale.ProduceName, sale.Tonnage, sale.AmountPaid,
		sale.BuyerName, sale.SalesAgent, sale.SalesAgentName, sale.Branch, sale.SaleType,
		sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID fetches one sale; (nil, nil) when absent.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProduceID, &s.ProduceName, &s.Tonnage, &s.AmountPaid,
		&s.BuyerName, &s.SalesAgent, &s.SalesAgentName, &s.Branch, &s.SaleType,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List returns sales matching the filter, newest first. Empty filter fields
// are skipped; the NULL arguments collapse the predicates.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE ($1 = '' OR branch = $1)
		  AND ($2 = '' OR sale_type = $2)
		  AND ($3 = '' OR sales_agent = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query,
		filter.Branch, filter.SaleType, filter.AgentID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProduceID, &s.ProduceName, &s.Tonnage, &s.AmountPaid,
			&s.BuyerName, &s.SalesAgent, &s.SalesAgentName, &s.Branch, &s.SaleType,
			&s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
