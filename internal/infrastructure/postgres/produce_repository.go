package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

var _ repository.ProduceRepository = (*ProduceRepo)(nil)

const produceColumns = `id, name, type, stock, cost, sale_price, dealer_name, contact, branch, recorded_by, recorded_by_name, created_at, updated_at`

// ProduceRepo implements ProduceRepository over PostgreSQL.
type ProduceRepo struct {
	q Querier
}

// NewProduceRepository builds the inventory persistence adapter. Pass pool or tx.
func NewProduceRepository(q Querier) *ProduceRepo {
	return &ProduceRepo{q: q}
}

// Create persists a new procurement row. No merge-on-name: every procurement
// event is its own row even when (name, branch) already exists.
func (r *ProduceRepo) Create(produce *entity.Produce) error {
	query := `
		INSERT INTO produce (id, name, type, stock, cost, sale_price, dealer_name, contact, branch, recorded_by, recorded_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		produce.ID, produce.Name, produce.Type, produce.Stock, produce.Cost, produce.SalePrice,
		produce.DealerName, produce.Contact, produce.Branch, produce.RecordedBy, produce.RecordedByName,
		produce.CreatedAt, produce.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert produce: %w", err)
	}
	return nil
}

// GetByID fetches one produce row; (nil, nil) when absent.
func (r *ProduceRepo) GetByID(id string) (*entity.Produce, error) {
	query := `SELECT ` + produceColumns + ` FROM produce WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get produce")
}

// GetByNameAndBranch resolves the compound lookup used by the sale workflows.
// Duplicates are possible; the oldest row wins so the result is deterministic.
func (r *ProduceRepo) GetByNameAndBranch(name, branch string) (*entity.Produce, error) {
	query := `
		SELECT ` + produceColumns + `
		FROM produce WHERE name = $1 AND branch = $2
		ORDER BY created_at ASC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, branch), "get produce by name")
}

// Update rewrites the mutable columns (manager partial updates go through here).
func (r *ProduceRepo) Update(produce *entity.Produce) error {
	query := `
		UPDATE produce
		SET name = $2, type = $3, stock = $4, cost = $5, sale_price = $6, dealer_name = $7, contact = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		produce.ID, produce.Name, produce.Type, produce.Stock, produce.Cost, produce.SalePrice,
		produce.DealerName, produce.Contact, produce.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update produce: %w", err)
	}
	return nil
}

// DecrementStock applies "subtract tonnage if stock >= tonnage" as one
// conditional UPDATE. The WHERE clause is the oversell guard: two concurrent
// sales serialize on the row and the loser sees no matching row.
func (r *ProduceRepo) DecrementStock(id string, tonnage decimal.Decimal) (decimal.Decimal, bool, error) {
	query := `
		UPDATE produce
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock`
	var remaining decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, id, tonnage).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("decrement stock: %w", err)
	}
	return remaining, true, nil
}

// List returns produce rows newest first; empty branch means all branches.
func (r *ProduceRepo) List(branch string) ([]*entity.Produce, error) {
	query := `
		SELECT ` + produceColumns + ` FROM produce
		WHERE ($1 = '' OR branch = $1)
		ORDER BY created_at DESC`
	return r.list(query, branch)
}

// ListByName orders by name ascending, for the inventory report.
func (r *ProduceRepo) ListByName(branch string) ([]*entity.Produce, error) {
	query := `
		SELECT ` + produceColumns + ` FROM produce
		WHERE ($1 = '' OR branch = $1)
		ORDER BY name ASC`
	return r.list(query, branch)
}

// ListOutOfStock returns rows with stock <= 0, newest first.
func (r *ProduceRepo) ListOutOfStock(branch string) ([]*entity.Produce, error) {
	query := `
		SELECT ` + produceColumns + ` FROM produce
		WHERE stock <= 0 AND ($1 = '' OR branch = $1)
		ORDER BY created_at DESC`
	return r.list(query, branch)
}

func (r *ProduceRepo) list(query string, args ...any) ([]*entity.Produce, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list produce: %w", err)
	}
	defer rows.Close()

	var list []*entity.Produce
	for rows.Next() {
		var p entity.Produce
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Stock, &p.Cost, &p.SalePrice,
			&p.DealerName, &p.Contact, &p.Branch, &p.RecordedBy, &p.RecordedByName,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan produce: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProduceRepo) scanOne(row pgx.Row, op string) (*entity.Produce, error) {
	var p entity.Produce
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Stock, &p.Cost, &p.SalePrice,
		&p.DealerName, &p.Contact, &p.Branch, &p.RecordedBy, &p.RecordedByName,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
