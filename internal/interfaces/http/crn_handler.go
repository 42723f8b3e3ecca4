package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/rs/zerolog"
)

type crnService interface {
	ReceiveProcurement(ctx context.Context, actor entity.Actor, orderID string, in dto.CrnReceiveProcurementRequest) (*dto.CrnResponse, error)
	SafeProcurementLine(ctx context.Context, actor entity.Actor, orderID, lineID string) (*dto.CrnResponse, error)
	Create(ctx context.Context, actor entity.Actor, in dto.CreateCrnRequest) (*dto.CrnResponse, error)
	Transfer(ctx context.Context, actor entity.Actor, crnID string) (*dto.CrnResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CrnResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.CrnListResponse, error)
}

// CrnHandler notas de recepción de bodega (protegido).
type CrnHandler struct {
	crn crnService
	log zerolog.Logger
}

// NewCrnHandler construye el handler.
func NewCrnHandler(crn crnService, log zerolog.Logger) *CrnHandler {
	return &CrnHandler{crn: crn, log: log}
}

// ReceiveProcurement godoc
// @Summary      Recibir una orden de compra con CRN
// @Description  Crea una CRN ya transferida; lo recibido entra al stock y lo rechazado solo se registra.
// @Tags         crn
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        order  path  string                            true  "ID de la orden de compra"
// @Param        body   body  dto.CrnReceiveProcurementRequest  true  "lines con received_qty y rejected_qty"
// @Success      201    {object}  dto.CrnResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/warehouse/crn/procurement/{order}/receive [post]
func (h *CrnHandler) ReceiveProcurement(c *fiber.Ctx) error {
	if e := bindParams(c, "order"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	var in dto.CrnReceiveProcurementRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.crn.ReceiveProcurement(c.Context(), ActorFrom(c), c.Params("order"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SafeLine godoc
// @Summary      Recibir completa una línea
// @Description  Recibe todo lo pendiente de la línea, sin rechazos.
// @Tags         crn
// @Security     Bearer
// @Produce      json
// @Param        order  path  string  true  "ID de la orden de compra"
// @Param        line   path  string  true  "ID de la línea"
// @Success      201    {object}  dto.CrnResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      422    {object}  dto.ErrorResponse
// @Router       /api/warehouse/crn/procurement/{order}/lines/{line}/safe [post]
func (h *CrnHandler) SafeLine(c *fiber.Ctx) error {
	if e := bindParams(c, "order", "line"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.crn.SafeProcurementLine(c.Context(), ActorFrom(c), c.Params("order"), c.Params("line"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Create godoc
// @Summary      Crear CRN manual
// @Description  Queda en borrador; el stock se mueve al transferirla.
// @Tags         crn
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCrnRequest  true  "items por variante, procurement_order_id opcional"
// @Success      201   {object}  dto.CrnResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/warehouse/crn [post]
func (h *CrnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCrnRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.crn.Create(c.Context(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Transferir CRN
// @Tags         crn
// @Security     Bearer
// @Produce      json
// @Param        crn  path  string  true  "ID de la CRN"
// @Success      200  {object}  dto.CrnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouse/crn/{crn}/transfer [put]
func (h *CrnHandler) Transfer(c *fiber.Ctx) error {
	if e := bindParams(c, "crn"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.crn.Transfer(c.Context(), ActorFrom(c), c.Params("crn"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener CRN
// @Tags         crn
// @Security     Bearer
// @Produce      json
// @Param        crn  path  string  true  "ID de la CRN"
// @Success      200  {object}  dto.CrnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/crn/{crn} [get]
func (h *CrnHandler) Get(c *fiber.Ctx) error {
	if e := bindParams(c, "crn"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.crn.GetByID(c.Context(), c.Params("crn"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "CRN")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar CRN
// @Tags         crn
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.CrnListResponse
// @Router       /api/warehouse/crn [get]
func (h *CrnHandler) List(c *fiber.Ctx) error {
	page, e := bindPage(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.crn.List(c.Context(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
