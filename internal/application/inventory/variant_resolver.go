package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ResolveDefaultVariant devuelve la variante por defecto (sin color) del SKU con la fila bloqueada.
// Si no existe y create es false retorna un error de validación; si create es true la crea con stock cero.
// Dos llamadas concurrentes no duplican la variante: la restricción única (item_id, color) hace que
// el segundo INSERT no inserte nada y aquí se relee la fila ya creada.
func ResolveDefaultVariant(ctx context.Context, variants repository.VariantRepository, item *entity.Item, create bool) (*entity.Variant, error) {
	v, err := variants.GetDefaultForUpdate(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	if !create {
		return nil, domain.Invalid("item_id", "no hay variante de stock para el SKU %s", item.ShortCode())
	}

	now := time.Now()
	v = &entity.Variant{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Kind:      entity.DefaultVariant(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := variants.CreateDefault(ctx, v); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		existing, err := variants.GetDefaultForUpdate(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("default variant for item %s vanished after duplicate insert", item.ID)
		}
		return existing, nil
	}
	return v, nil
}
