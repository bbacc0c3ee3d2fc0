package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/application/sales"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// CreditSalesHandler credit-sale endpoints.
type CreditSalesHandler struct {
	uc *sales.SalesUseCase
}

// NewCreditSalesHandler builds the credit-sales handler.
func NewCreditSalesHandler(uc *sales.SalesUseCase) *CreditSalesHandler {
	return &CreditSalesHandler{uc: uc}
}

// Create handles POST /api/credit-sales.
func (h *CreditSalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	var errs []string
	if len(in.BuyerName) < 2 {
		errs = append(errs, "Buyer name must be at least 2 characters long")
	}
	if len(in.NIN) < 6 {
		errs = append(errs, "National ID must be at least 6 characters long")
	}
	if len(in.Location) < 3 {
		errs = append(errs, "Location must be at least 3 characters long")
	}
	if !contactRe.MatchString(in.Contact) {
		errs = append(errs, "Contact must be a phone number of 10 to 15 digits")
	}
	if !in.AmountDue.GreaterThan(decimal.Zero) {
		errs = append(errs, "Amount due must be greater than zero")
	}
	if in.ProduceName == "" {
		errs = append(errs, "Produce name is required")
	}
	if !in.Tonnage.GreaterThan(decimal.Zero) {
		errs = append(errs, "Tonnage must be greater than zero")
	}
	if !in.DueDate.After(time.Now()) {
		errs = append(errs, "Due date must be in the future")
	}
	if !entity.ValidBranch(in.Branch) {
		errs = append(errs, "Branch must be either branch1 or branch2")
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: errs})
	}

	out, err := h.uc.RecordCreditSale(c.Context(), agentFrom(c), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List handles GET /api/credit-sales.
func (h *CreditSalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListCreditSales(repository.CreditSaleFilter{
		Branch: c.Query("branch"),
		Status: c.Query("status"),
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ListByAgent handles GET /api/credit-sales/agent/:agentId.
func (h *CreditSalesHandler) ListByAgent(c *fiber.Ctx) error {
	out, err := h.uc.ListAgentCreditSales(c.Params("agentId"), repository.CreditSaleFilter{
		Branch: c.Query("branch"),
		Status: c.Query("status"),
	})
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus handles PUT /api/credit-sales/:id/status.
func (h *CreditSalesHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateCreditStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	out, err := h.uc.UpdateCreditStatus(c.Params("id"), in.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Status must be one of: pending, paid, overdue"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Credit sale not found"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// OverdueAlerts handles GET /api/credit-sales/alerts/overdue.
func (h *CreditSalesHandler) OverdueAlerts(c *fiber.Ctx) error {
	out, err := h.uc.OverdueAlerts(c.Query("branch"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
