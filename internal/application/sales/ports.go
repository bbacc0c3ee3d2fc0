package sales

import (
	"context"

	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// TxRunner executes fn inside a single database transaction, handing it
// repositories bound to that transaction. The stock decrement and the
// transaction-record insert commit or roll back together, so a decrement can
// never outlive a failed record write.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		produceRepo repository.ProduceRepository,
		saleRepo repository.SaleRepository,
		creditRepo repository.CreditSaleRepository,
	) error) error
}

// ReceiptGenerator renders a sale receipt document and returns its bytes.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
