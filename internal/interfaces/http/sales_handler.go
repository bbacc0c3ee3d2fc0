package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/application/sales"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// SalesHandler regular sale endpoints.
type SalesHandler struct {
	uc      *sales.SalesUseCase
	receipt *sales.ReceiptUseCase
}

// NewSalesHandler builds the sales handler.
func NewSalesHandler(uc *sales.SalesUseCase, receipt *sales.ReceiptUseCase) *SalesHandler {
	return &SalesHandler{uc: uc, receipt: receipt}
}

func agentFrom(c *fiber.Ctx) sales.Agent {
	return sales.Agent{UserID: GetUserID(c), Name: GetUserName(c)}
}

// Create handles POST /api/sales.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	var errs []string
	if in.ProduceName == "" {
		errs = append(errs, "Produce name is required")
	}
	if !in.Tonnage.GreaterThan(decimal.Zero) {
		errs = append(errs, "Tonnage must be greater than zero")
	}
	if in.AmountPaid.IsNegative() {
		errs = append(errs, "Amount paid cannot be negative")
	}
	if len(in.BuyerName) < 2 {
		errs = append(errs, "Buyer name must be at least 2 characters long")
	}
	if !entity.ValidBranch(in.Branch) {
		errs = append(errs, "Branch must be either branch1 or branch2")
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: errs})
	}

	out, err := h.uc.RecordSale(c.Context(), agentFrom(c), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List handles GET /api/sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(repository.SaleFilter{
		Branch:   c.Query("branch"),
		SaleType: c.Query("saleType"),
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ListByAgent handles GET /api/sales/agent/:agentId.
func (h *SalesHandler) ListByAgent(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(repository.SaleFilter{
		Branch:  c.Query("branch"),
		AgentID: c.Params("agentId"),
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID handles GET /api/sales/:id.
func (h *SalesHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Sale not found"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Receipt handles GET /api/sales/:id/receipt.
func (h *SalesHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.receipt.DownloadReceipt(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Sale not found"})
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}

// saleError maps the transaction-recorder failure modes shared by sales and
// credit sales.
func saleError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Produce not found in this branch"})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: insufficient.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Insufficient stock"})
	}
	return internalError(c, err)
}
