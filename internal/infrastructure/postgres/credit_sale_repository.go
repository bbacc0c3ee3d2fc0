package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

var _ repository.CreditSaleRepository = (*CreditSaleRepo)(nil)

const creditSaleColumns = `id, buyer_name, nin, location, contact, amount_due, produce_id, produce_name, tonnage, sales_agent, sales_agent_name, due_date, dispatch_date, branch, status, created_at, updated_at`

// CreditSaleRepo implements CreditSaleRepository over PostgreSQL.
type CreditSaleRepo struct {
	q Querier
}

// NewCreditSaleRepository builds the credit-sale persistence adapter.
func NewCreditSaleRepository(q Querier) *CreditSaleRepo {
	return &CreditSaleRepo{q: q}
}

// Create persists a credit-sale record.
func (r *CreditSaleRepo) Create(cs *entity.CreditSale) error {
	query := `
		INSERT INTO credit_sales (id, buyer_name, nin, location, contact, amount_due, produce_id, produce_name, tonnage, sales_agent, sales_agent_name, due_date, dispatch_date, branch, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		cs.ID, cs.BuyerName, cs.NIN, cs.Location, cs.Contact, cs.AmountDue,
		cs.ProduceID, cs.ProduceName, cs.Tonnage, cs.SalesAgent, cs.SalesAgentName,
		cs.DueDate, cs.DispatchDate, cs.Branch, cs.Status, cs.CreatedAt, cs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit sale: %w", err)
	}
	return nil
}

// GetByID fetches one credit sale; (nil, nil) when absent.
func (r *CreditSaleRepo) GetByID(id string) (*entity.CreditSale, error) {
	query := `SELECT ` + creditSaleColumns + ` FROM credit_sales WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// UpdateStatus sets the payment status and bumps updated_at, returning the
// updated record. (nil, nil) when the id does not exist.
func (r *CreditSaleRepo) UpdateStatus(id, status string) (*entity.CreditSale, error) {
	query := `
		UPDATE credit_sales
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + creditSaleColumns
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, status))
}

// List returns credit sales matching the filter, newest first.
func (r *CreditSaleRepo) List(filter repository.CreditSaleFilter) ([]*entity.CreditSale, error) {
	query := `
		SELECT ` + creditSaleColumns + ` FROM credit_sales
		WHERE ($1 = '' OR branch = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR sales_agent = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at <= $5)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query,
		filter.Branch, filter.Status, filter.AgentID, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("list credit sales: %w", err)
	}
	return r.collect(rows)
}

// ListDueBefore returns unpaid records whose due date has passed the cutoff,
// soonest-due first. Status is read as stored; the caller interprets the rows
// as overdue regardless.
func (r *CreditSaleRepo) ListDueBefore(cutoff time.Time, branch string) ([]*entity.CreditSale, error) {
	query := `
		SELECT ` + creditSaleColumns + ` FROM credit_sales
		WHERE status IN ($1, $2)
		  AND due_date < $3
		  AND ($4 = '' OR branch = $4)
		ORDER BY due_date ASC`
	rows, err := r.q.Query(context.Background(), query,
		entity.CreditStatusPending, entity.CreditStatusOverdue, cutoff, branch)
	if err != nil {
		return nil, fmt.Errorf("list due credit sales: %w", err)
	}
	return r.collect(rows)
}

func (r *CreditSaleRepo) scanOne(row pgx.Row) (*entity.CreditSale, error) {
	var cs entity.CreditSale
	err := row.Scan(
		&cs.ID, &cs.BuyerName, &cs.NIN, &cs.Location, &cs.Contact, &cs.AmountDue,
		&cs.ProduceID, &cs.ProduceName, &cs.Tonnage, &cs.SalesAgent, &cs.SalesAgentName,
		&cs.DueDate, &cs.DispatchDate, &cs.Branch, &cs.Status, &cs.CreatedAt, &cs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan credit sale: %w", err)
	}
	return &cs, nil
}

func (r *CreditSaleRepo) collect(rows pgx.Rows) ([]*entity.CreditSale, error) {
	defer rows.Close()
	var list []*entity.CreditSale
	for rows.Next() {
		var cs entity.CreditSale
		if err := rows.Scan(
			&cs.ID, &cs.BuyerName, &cs.NIN, &cs.Location, &cs.Contact, &cs.AmountDue,
			&cs.ProduceID, &cs.ProduceName, &cs.Tonnage, &cs.SalesAgent, &cs.SalesAgentName,
			&cs.DueDate, &cs.DispatchDate, &cs.Branch, &cs.Status, &cs.CreatedAt, &cs.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credit sale: %w", err)
		}
		list = append(list, &cs)
	}
	return list, rows.Err()
}
