package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, code string) (*entity.Item, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Item, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
}
