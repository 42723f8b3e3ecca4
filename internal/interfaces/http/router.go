package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/domain/access"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      ledgerService
	Items       itemService
	Packages    packageService
	Procurement procurementService
	Shortage    shortageService
	Crn         crnService
	Sales       salesService
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token y cada una su permiso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	perm := RequirePermission

	// Items, stock y paquetes
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Log)
	catalogHandler := NewCatalogHandler(deps.Items, deps.Packages, deps.Log)
	items := protected.Group("/items")
	items.Post("/stock/in", perm(access.OpStockIn), inventoryHandler.StockIn)
	items.Post("/stock/out", perm(access.OpStockOut), inventoryHandler.StockOut)
	items.Post("/", perm(access.OpCatalogWrite), catalogHandler.CreateItem)
	items.Get("/", perm(access.OpCatalogRead), catalogHandler.ListItems)
	items.Get("/:id", perm(access.OpCatalogRead), catalogHandler.GetItem)
	items.Get("/:id/stock", perm(access.OpCatalogRead), catalogHandler.ItemStock)

	packages := protected.Group("/packages")
	packages.Post("/", perm(access.OpCatalogWrite), catalogHandler.CreatePackage)
	packages.Get("/", perm(access.OpCatalogRead), catalogHandler.ListPackages)
	packages.Get("/:id", perm(access.OpCatalogRead), catalogHandler.GetPackage)

	invGroup := protected.Group("/inventory")
	invGroup.Get("/transactions", perm(access.OpCatalogRead), inventoryHandler.ListTransactions)
	invGroup.Get("/transactions/:id", perm(access.OpCatalogRead), inventoryHandler.GetTransaction)

	// Compras
	procurementHandler := NewProcurementHandler(deps.Procurement, deps.Shortage, deps.Log)
	procurement := protected.Group("/procurement")
	procurement.Get("/suggestions", perm(access.OpProcurementRead), procurementHandler.Suggestions)
	procurement.Post("/orders", perm(access.OpProcurementWrite), procurementHandler.CreateDraft)
	procurement.Get("/orders", perm(access.OpProcurementRead), procurementHandler.ListOrders)
	procurement.Get("/orders/:order", perm(access.OpProcurementRead), procurementHandler.GetOrder)
	procurement.Post("/orders/:order/lines", perm(access.OpProcurementWrite), procurementHandler.AddLine)
	procurement.Put("/orders/:order/receive", perm(access.OpProcurementReceive), procurementHandler.Receive)
	procurement.Delete("/orders/:order", perm(access.OpProcurementWrite), procurementHandler.DeleteDraft)

	// Recepción en bodega (CRN)
	crnHandler := NewCrnHandler(deps.Crn, deps.Log)
	crn := protected.Group("/warehouse/crn")
	crn.Post("/procurement/:order/receive", perm(access.OpCrnWrite), crnHandler.ReceiveProcurement)
	crn.Post("/procurement/:order/lines/:line/safe", perm(access.OpCrnWrite), crnHandler.SafeLine)
	crn.Post("/", perm(access.OpCrnWrite), crnHandler.Create)
	crn.Get("/", perm(access.OpCrnRead), crnHandler.List)
	crn.Get("/:crn", perm(access.OpCrnRead), crnHandler.Get)
	crn.Put("/:crn/transfer", perm(access.OpCrnWrite), crnHandler.Transfer)

	// Ventas
	salesHandler := NewSalesHandler(deps.Sales, deps.Log)
	orders := protected.Group("/orders")
	orders.Post("/", perm(access.OpSalesWrite), salesHandler.Submit)
	orders.Get("/", perm(access.OpSalesRead), salesHandler.List)
	orders.Get("/:order", perm(access.OpSalesRead), salesHandler.Get)
}
