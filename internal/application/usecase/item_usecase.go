package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo de SKUs. El stock se maneja vía el libro de inventario.
type ItemUseCase struct {
	items    repository.ItemRepository
	variants repository.VariantRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.ItemRepository, variants repository.VariantRepository) *ItemUseCase {
	return &ItemUseCase{items: items, variants: variants}
}

// Create crea un nuevo SKU. El código se normaliza a mayúsculas y debe ser único.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("code", "code y name son requeridos")
	}
	if in.Length != nil && in.Length.IsNegative() {
		return nil, domain.Invalid("length", "el largo no puede ser negativo")
	}
	existing, err := uc.items.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.UnitMeasure
	if unit == "" {
		unit = "pcs"
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		UnitMeasure: unit,
		Length:      in.Length,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	out := dto.FromItem(item)
	return &out, nil
}

// GetByID obtiene un SKU por ID; (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}
	out := dto.FromItem(item)
	return &out, nil
}

// List lista SKUs con paginación.
func (uc *ItemUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	list, err := uc.items.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, dto.FromItem(i))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Stock devuelve las variantes del SKU y la suma de stock_current.
func (uc *ItemUseCase) Stock(ctx context.Context, itemID string) (*dto.ItemStockResponse, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item_id", "SKU no encontrado")
	}
	variants, err := uc.variants.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemStockResponse{Item: dto.FromItem(item), Variants: make([]dto.VariantResponse, 0, len(variants))}
	for _, v := range variants {
		out.Variants = append(out.Variants, dto.FromVariant(v))
		out.StockCurrent += v.StockCurrent
	}
	return out, nil
}
