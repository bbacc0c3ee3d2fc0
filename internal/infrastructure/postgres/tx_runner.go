package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slodongo/kgl-api/internal/application/sales"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction. The stock
// decrement and the matching sale record commit or roll back together.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, invokes fn with repos bound to it, and commits
// when fn returns nil. Any error from fn rolls the whole transaction back.
func (r *TxRunner) Run(ctx context.Context, fn func(
	produceRepo repository.ProduceRepository,
	saleRepo repository.SaleRepository,
	creditRepo repository.CreditSaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	produceRepo := NewProduceRepository(tx)
	saleRepo := NewSaleRepository(tx)
	creditRepo := NewCreditSaleRepository(tx)

	if err := fn(produceRepo, saleRepo, creditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
