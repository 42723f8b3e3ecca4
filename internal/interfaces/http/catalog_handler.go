package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/rs/zerolog"
)

type itemService interface {
	Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ItemResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error)
	Stock(ctx context.Context, itemID string) (*dto.ItemStockResponse, error)
}

type packageService interface {
	Create(ctx context.Context, in dto.CreatePackageRequest) (*dto.PackageResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PackageResponse, error)
	List(ctx context.Context, page dto.PageRequest) ([]dto.PackageResponse, error)
}

// CatalogHandler SKUs y paquetes (protegido).
type CatalogHandler struct {
	items    itemService
	packages packageService
	log      zerolog.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(items itemService, packages packageService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{items: items, packages: packages, log: log}
}

// CreateItem godoc
// @Summary      Crear SKU
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "code, name, unit_measure, length"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.items.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obtener SKU
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del SKU"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	if e := bindParams(c, "id"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.items.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "SKU")
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar SKUs
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	page, e := bindPage(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.items.List(c.Context(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ItemStock godoc
// @Summary      Stock de un SKU por variante
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del SKU"
// @Success      200  {object}  dto.ItemStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [get]
func (h *CatalogHandler) ItemStock(c *fiber.Ctx) error {
	if e := bindParams(c, "id"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.items.Stock(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreatePackage godoc
// @Summary      Crear paquete
// @Description  Lista de materiales: cada línea es un SKU con su cantidad por unidad de paquete.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePackageRequest  true  "code, name, lines"
// @Success      201   {object}  dto.PackageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/packages [post]
func (h *CatalogHandler) CreatePackage(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if e := bindBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.packages.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPackage godoc
// @Summary      Obtener paquete
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.PackageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id} [get]
func (h *CatalogHandler) GetPackage(c *fiber.Ctx) error {
	if e := bindParams(c, "id"); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.packages.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "paquete")
	}
	return c.JSON(out)
}

// ListPackages godoc
// @Summary      Listar paquetes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.PackageResponse
// @Router       /api/packages [get]
func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	page, e := bindPage(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	list, err := h.packages.List(c.Context(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"items": list,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
