package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// VariantRepository define el puerto para los baldes de stock (item_variants).
// Es el único camino de escritura de stock_initial / stock_current.
type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Variant, error)
	GetDefault(ctx context.Context, itemID string) (*entity.Variant, error)
	// GetDefaultForUpdate bloquea la fila de la variante por defecto.
	GetDefaultForUpdate(ctx context.Context, itemID string) (*entity.Variant, error)
	// CreateDefault crea la variante por defecto con stock cero; domain.ErrDuplicate si ya existe.
	CreateDefault(ctx context.Context, variant *entity.Variant) error
	ListByItem(ctx context.Context, itemID string) ([]*entity.Variant, error)
	// IncrementStock suma qty a stock_initial y stock_current.
	IncrementStock(ctx context.Context, variantID string, qty int64) error
	// DecrementStock resta qty de stock_current solo si alcanza; domain.ErrInsufficientStock si no.
	DecrementStock(ctx context.Context, variantID string, qty int64) error
	// SumStockByItem suma stock_current de todas las variantes por item.
	SumStockByItem(ctx context.Context) (map[string]int64, error)
}
