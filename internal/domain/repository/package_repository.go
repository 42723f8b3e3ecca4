package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// PackageRepository define el puerto de persistencia para paquetes y su lista de materiales.
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Package, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Package, error)
}
