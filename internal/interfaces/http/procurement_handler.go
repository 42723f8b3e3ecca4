package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

type procurementService interface {
	CreateDraft(ctx context.Context, actor entity.Actor, in dto.CreateProcurementDraftRequest) (*dto.ProcurementOrderResponse, error)
	AddLine(ctx context.Context, actor entity.Actor, orderID string, in dto.AddProcurementLineRequest) (*dto.ProcurementOrderResponse, error)
	DeleteDraft(ctx context.Context, actor entity.Actor, orderID string) error
	ReceiveLines(ctx context.Context, actor entity.Actor, orderID string, in dto.ReceiveProcurementRequest) (*dto.ProcurementOrderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProcurementOrderResponse, error)
	List(ctx context.Context, status string, page dto.PageRequest) (*dto.ProcurementOrderListResponse, error)
}

type shortageService interface {
	Suggest(ctx context.Context) (*dto.ShortageSuggestionResponse, error)
}

// ProcurementHandler órdenes de compra y sugerencia de faltantes (protegido).
type ProcurementHandler struct {
	orders   procurementService
	shortage shortageService
	log      zerolog.Logger
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(orders procurementService, shortage shortageService, log zerolog.Logger) *ProcurementHandler {
	return &ProcurementHandler{orders: orders, shortage: shortage, log: log}
}

// Suggestions godoc
// @Summary      Sugerencia de compra por faltantes
// @Description  Demanda abierta de órdenes de venta sin orden de compra vinculada menos el stock disponible.
// @Description  No modifica nada; dos llamadas seguidas devuelven lo mismo.
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShortageSuggestionResponse
// @Router       /api/procurement/suggestions [get]
func (h *ProcurementHandler) Suggestions(c *fiber.Ctx) error {
	out, err := h.shortage.Suggest(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateDraft godoc
// @Summary      Crear orden de compra en borrador
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProcurementDraftRequest  true  "sku_lines, package_lines, source_order_ids"
// @Success      201   {object}  dto.ProcurementOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/procurement/orders [post]
func (h *ProcurementHandler) CreateDraft(c *fiber.Ctx) error {
	var in dto.CreateProcurementDraftRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.CreateDraft(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddLine godoc
// @Summary      Agregar SKU a un borrador
// @Description  Si el SKU ya está en la orden se suma la cantidad a la línea existente.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        order  path  string                         true  "ID de la orden"
// @Param        body   body  dto.AddProcurementLineRequest  true  "item_id, quantity"
// @Success      200    {object}  dto.ProcurementOrderResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{order}/lines [post]
func (h *ProcurementHandler) AddLine(c *fiber.Ctx) error {
	if e := bindParams(c, "order"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	var in dto.AddProcurementLineRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.AddLine(c.Context(), ActorFrom(c), c.Params("order"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DeleteDraft godoc
// @Summary      Eliminar borrador
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        order  path  string  true  "ID de la orden"
// @Success      200    {object}  dto.MessageResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{order} [delete]
func (h *ProcurementHandler) DeleteDraft(c *fiber.Ctx) error {
	if e := bindParams(c, "order"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	if err := h.orders.DeleteDraft(c.Context(), ActorFrom(c), c.Params("order")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "borrador eliminado"})
}

// Receive godoc
// @Summary      Recepción directa de una orden de compra
// @Description  received_quantity es el total recibido de la línea; el aumento sobre lo ya recibido entra al stock.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        order  path  string                         true  "ID de la orden"
// @Param        body   body  dto.ReceiveProcurementRequest  true  "lines"
// @Success      200    {object}  dto.ProcurementOrderResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{order}/receive [put]
func (h *ProcurementHandler) Receive(c *fiber.Ctx) error {
	if e := bindParams(c, "order"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	var in dto.ReceiveProcurementRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.ReceiveLines(c.Context(), ActorFrom(c), c.Params("order"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener orden de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        order  path  string  true  "ID de la orden"
// @Success      200    {object}  dto.ProcurementOrderResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{order} [get]
func (h *ProcurementHandler) GetOrder(c *fiber.Ctx) error {
	if e := bindParams(c, "order"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.GetByID(c.Context(), c.Params("order"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "orden de compra")
	}
	return c.JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft | partial | received"
// @Param        limit   query  int     false  "Tamaño de página (1-100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ProcurementOrderListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/procurement/orders [get]
func (h *ProcurementHandler) ListOrders(c *fiber.Ctx) error {
	page, e := bindPage(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.List(c.Context(), c.Query("status"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
