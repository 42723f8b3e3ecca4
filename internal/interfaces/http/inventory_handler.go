package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

// ledgerService contrato del libro de inventario que usa el handler. Lo implementa *inventory.LedgerUseCase.
type ledgerService interface {
	StockInFromRequest(ctx context.Context, actor entity.Actor, in dto.StockMovementRequest) (*dto.InventoryTransactionResponse, error)
	StockOutFromRequest(ctx context.Context, actor entity.Actor, in dto.StockMovementRequest) (*dto.InventoryTransactionResponse, error)
	GetTransaction(ctx context.Context, id string) (*dto.InventoryTransactionResponse, error)
	ListTransactions(ctx context.Context, page dto.PageRequest) (*dto.InventoryTransactionListResponse, error)
}

// InventoryHandler maneja entradas y salidas de stock y la consulta de transacciones (protegido).
type InventoryHandler struct {
	ledger ledgerService
	log    zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger ledgerService, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, log: log}
}

// StockIn godoc
// @Summary      Entrada de stock
// @Description  mode=package expande el paquete a SKUs; mode=alacarte usa lines. Todo en una transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "mode, package_id + package_quantity o lines"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/items/stock/in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.ledger.StockInFromRequest(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StockOut godoc
// @Summary      Salida de stock
// @Description  Todas las líneas se validan antes de descontar; si una no alcanza no se mueve nada.
// @Description  Con sales_order_id en modo package avanza el despacho de la orden de venta.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "mode, package_id + package_quantity o lines, sales_order_id opcional"
// @Success      201   {object}  dto.InventoryTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/items/stock/out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.ledger.StockOutFromRequest(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTransaction godoc
// @Summary      Obtener transacción de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.InventoryTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions/{id} [get]
func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	if e := bindParams(c, "id"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.ledger.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "transacción")
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Listar transacciones de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryTransactionListResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	page, e := bindPage(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.ledger.ListTransactions(c.Context(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
