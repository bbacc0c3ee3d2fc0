package sales

import (
	"context"
	"fmt"
)

// ReceiptUseCase produces the printable receipt for a completed regular sale.
type ReceiptUseCase struct {
	sales     *SalesUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase builds the use case.
func NewReceiptUseCase(sales *SalesUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator}
}

// DownloadReceipt loads the sale and renders its receipt.
//
// Returns:
//   - (pdfBytes, filename, nil) on success.
//   - domain.ErrNotFound when the sale does not exist.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.sales.GetSaleEntity(saleID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateReceipt(ctx, sale)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generation failed: %w", err)
	}

	filename = fmt.Sprintf("receipt_%s.pdf", sale.ID)
	return pdfBytes, filename, nil
}
