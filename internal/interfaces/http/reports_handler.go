package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/slodongo/kgl-api/internal/application/dto"
	"github.com/slodongo/kgl-api/internal/application/reports"
	"github.com/slodongo/kgl-api/internal/domain"
)

// ReportsHandler read-only aggregation endpoints.
type ReportsHandler struct {
	uc *reports.ReportsUseCase
}

// NewReportsHandler builds the reports handler.
func NewReportsHandler(uc *reports.ReportsUseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

func viewerFrom(c *fiber.Ctx) reports.Viewer {
	return reports.Viewer{Role: GetRole(c), Branch: GetUserBranch(c)}
}

func periodFrom(c *fiber.Ctx) dto.ReportPeriodRequest {
	return dto.ReportPeriodRequest{
		Branch:    c.Query("branch"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

// SalesSummary handles GET /api/reports/sales-summary.
func (h *ReportsHandler) SalesSummary(c *fiber.Ctx) error {
	out, err := h.uc.SalesSummary(periodFrom(c))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// BranchReport handles GET /api/reports/branch-report.
func (h *ReportsHandler) BranchReport(c *fiber.Ctx) error {
	out, err := h.uc.BranchReport(viewerFrom(c), c.Query("branch"))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// InventoryReport handles GET /api/reports/inventory.
func (h *ReportsHandler) InventoryReport(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Query("branch"))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

// AgentPerformance handles GET /api/reports/agent-performance.
func (h *ReportsHandler) AgentPerformance(c *fiber.Ctx) error {
	out, err := h.uc.AgentPerformance(viewerFrom(c), periodFrom(c))
	if err != nil {
		return reportError(c, err)
	}
	return c.JSON(out)
}

func reportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Dates must use the YYYY-MM-DD format"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "You can only view reports for your own branch"})
	}
	return internalError(c, err)
}
