package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/application/procurement"
	"github.com/slodongo/kgl-api/internal/domain"
	"github.com/slodongo/kgl-api/internal/domain/entity"
)

// ProcurementHandler inventory ledger endpoints.
type ProcurementHandler struct {
	uc *procurement.ProcurementUseCase
}

// NewProcurementHandler builds the procurement handler.
func NewProcurementHandler(uc *procurement.ProcurementUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

func recorderFrom(c *fiber.Ctx) procurement.Recorder {
	return procurement.Recorder{
		UserID: GetUserID(c),
		Name:   GetUserName(c),
		Branch: GetUserBranch(c),
	}
}

// Create handles POST /api/procurement.
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	var errs []string
	if len(in.Name) < 2 {
		errs = append(errs, "Produce name must be at least 2 characters long")
	}
	if len(in.Type) < 2 {
		errs = append(errs, "Produce type must be at least 2 characters long")
	}
	if in.Stock.IsNegative() {
		errs = append(errs, "Stock cannot be negative")
	}
	if !in.Cost.GreaterThan(decimal.Zero) {
		errs = append(errs, "Cost must be greater than zero")
	}
	if !in.SalePrice.GreaterThan(decimal.Zero) {
		errs = append(errs, "Sale price must be greater than zero")
	}
	if len(in.DealerName) < 2 {
		errs = append(errs, "Dealer name must be at least 2 characters long")
	}
	if !entity.ValidBranch(in.Branch) {
		errs = append(errs, "Branch must be either branch1 or branch2")
	}
	if !contactRe.MatchString(in.Contact) {
		errs = append(errs, "Contact must be a phone number of 10 to 15 digits")
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: errs})
	}

	out, err := h.uc.Record(recorderFrom(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "You can only record procurement for your own branch"})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProcurementCreatedResponse{
		Message: "Procurement recorded successfully",
		Produce: *out,
	})
}

// List handles GET /api/procurement.
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("branch"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID handles GET /api/procurement/:id.
func (h *ProcurementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Produce not found"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Update handles PUT /api/procurement/:id.
func (h *ProcurementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	var errs []string
	if in.Name != nil && len(*in.Name) < 2 {
		errs = append(errs, "Produce name must be at least 2 characters long")
	}
	if in.Type != nil && len(*in.Type) < 2 {
		errs = append(errs, "Produce type must be at least 2 characters long")
	}
	if in.Stock != nil && in.Stock.IsNegative() {
		errs = append(errs, "Stock cannot be negative")
	}
	if in.Cost != nil && !in.Cost.GreaterThan(decimal.Zero) {
		errs = append(errs, "Cost must be greater than zero")
	}
	if in.SalePrice != nil && !in.SalePrice.GreaterThan(decimal.Zero) {
		errs = append(errs, "Sale price must be greater than zero")
	}
	if in.DealerName != nil && len(*in.DealerName) < 2 {
		errs = append(errs, "Dealer name must be at least 2 characters long")
	}
	if in.Contact != nil && !contactRe.MatchString(*in.Contact) {
		errs = append(errs, "Contact must be a phone number of 10 to 15 digits")
	}
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Errors: errs})
	}

	out, err := h.uc.Update(c.Params("id"), recorderFrom(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Produce not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "You can only update produce from your own branch"})
		}
		return internalError(c, err)
	}
	return c.JSON(dto.ProcurementCreatedResponse{
		Message: "Produce updated successfully",
		Produce: *out,
	})
}

// OutOfStockAlerts handles GET /api/procurement/alerts/out-of-stock.
func (h *ProcurementHandler) OutOfStockAlerts(c *fiber.Ctx) error {
	out, err := h.uc.OutOfStockAlerts(c.Query("branch"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
