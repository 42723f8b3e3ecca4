package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

type salesService interface {
	Submit(ctx context.Context, actor entity.Actor, in dto.SubmitSalesOrderRequest) (*dto.SalesOrderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SalesOrderResponse, error)
	List(ctx context.Context, status string, page dto.PageRequest) (*dto.SalesOrderListResponse, error)
}

// SalesHandler órdenes de venta (protegido).
type SalesHandler struct {
	orders salesService
	log    zerolog.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(orders salesService, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{orders: orders, log: log}
}

// Submit godoc
// @Summary      Registrar orden de venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitSalesOrderRequest  true  "customer_name, order_date (YYYY-MM-DD), lines por paquete"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *SalesHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitSalesOrderRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.Submit(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener orden de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        order  path  string  true  "ID de la orden"
// @Success      200    {object}  dto.SalesOrderResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/orders/{order} [get]
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	if e := bindParams(c, "order"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.orders.GetByID(c.Context(), c.Params("order"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "orden de venta")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "open | partial | fulfilled"
// @Param        limit   query  int     false  "Tamaño de página (1-100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SalesOrderListResponse
// @Router       /api/orders [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
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
