package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/slodongo/kgl-api/internal/application/auth"
	"github.com/slodongo/kgl-api/internal/application/procurement"
	"github.com/slodongo/kgl-api/internal/application/reports"
	"github.com/slodongo/kgl-api/internal/application/sales"
	"github.com/slodongo/kgl-api/internal/domain/entity"
	"github.com/slodongo/kgl-api/internal/domain/repository"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProcurementUC *procurement.ProcurementUseCase
	SalesUC       *sales.SalesUseCase
	ReceiptUC     *sales.ReceiptUseCase
	ReportsUC     *reports.ReportsUseCase
	UserRepo      repository.UserRepository
	JWTSecret     string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authed := AuthMiddleware(deps.JWTSecret)
	populated := PopulateUser(deps.UserRepo)

	// Auth (register and login public, profile behind the token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile/:id", authed, authHandler.Profile)

	// Procurement: reads for any authenticated user, writes for managers and
	// directors of the matching branch.
	proc := api.Group("/procurement", authed)
	procHandler := NewProcurementHandler(deps.ProcurementUC)
	proc.Get("/", procHandler.List)
	proc.Get("/alerts/out-of-stock", procHandler.OutOfStockAlerts)
	proc.Get("/:id", procHandler.GetByID)
	proc.Post("/", RequireRole(entity.RoleManager, entity.RoleDirector), populated, procHandler.Create)
	proc.Put("/:id", RequireRole(entity.RoleManager, entity.RoleDirector), populated, procHandler.Update)

	// Sales: recording needs the populate-user stage for the denormalized
	// agent name.
	salesGroup := api.Group("/sales", authed)
	salesHandler := NewSalesHandler(deps.SalesUC, deps.ReceiptUC)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/agent/:agentId", salesHandler.ListByAgent)
	salesGroup.Get("/:id/receipt", salesHandler.Receipt)
	salesGroup.Get("/:id", salesHandler.GetByID)
	salesGroup.Post("/", RequireRole(entity.RoleManager, entity.RoleAgent, entity.RoleDirector), populated, salesHandler.Create)

	// Credit sales
	credit := api.Group("/credit-sales", authed)
	creditHandler := NewCreditSalesHandler(deps.SalesUC)
	credit.Get("/", creditHandler.List)
	credit.Get("/agent/:agentId", creditHandler.ListByAgent)
	credit.Get("/alerts/overdue", creditHandler.OverdueAlerts)
	credit.Put("/:id/status", creditHandler.UpdateStatus)
	credit.Post("/", RequireRole(entity.RoleManager, entity.RoleAgent, entity.RoleDirector), populated, creditHandler.Create)

	// Reports: branch-scoped ones need the populate-user stage to resolve the
	// viewer's own branch.
	reportsGroup := api.Group("/reports", authed)
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reportsGroup.Get("/sales-summary", RequireRole(entity.RoleDirector), reportsHandler.SalesSummary)
	reportsGroup.Get("/branch-report", RequireRole(entity.RoleManager, entity.RoleDirector), populated, reportsHandler.BranchReport)
	reportsGroup.Get("/inventory", reportsHandler.InventoryReport)
	reportsGroup.Get("/agent-performance", RequireRole(entity.RoleManager, entity.RoleDirector), populated, reportsHandler.AgentPerformance)
}
