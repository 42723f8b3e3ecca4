package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// PackageUseCase alta y consulta de paquetes. La lista de materiales no se edita después de creada.
type PackageUseCase struct {
	txRunner TxRunner
	packages repository.PackageRepository
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(txRunner TxRunner, store repository.Store) *PackageUseCase {
	return &PackageUseCase{txRunner: txRunner, packages: store.Packages()}
}

// Create crea un paquete con sus líneas en una sola transacción. Líneas repetidas del mismo SKU se suman.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, domain.Invalid("code", "code es requerido")
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("lines", "el paquete debe tener al menos un SKU")
	}
	now := time.Now()
	pkg := &entity.Package{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Active:    in.Active == nil || *in.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	idx := make(map[string]int, len(in.Lines))
	ids := make([]string, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.Quantity <= 0 || l.Quantity > domaininv.MaxQuantity {
			return nil, domain.Invalid("lines", "línea %d: la cantidad debe estar entre 1 y %d", i+1, domaininv.MaxQuantity)
		}
		if j, ok := idx[l.ItemID]; ok {
			if pkg.Lines[j].Quantity+l.Quantity > domaininv.MaxQuantity {
				return nil, domain.Invalid("lines", "línea %d: la suma del SKU %s supera %d", i+1, l.ItemID, domaininv.MaxQuantity)
			}
			pkg.Lines[j].Quantity += l.Quantity
			continue
		}
		idx[l.ItemID] = len(pkg.Lines)
		ids = append(ids, l.ItemID)
		pkg.Lines = append(pkg.Lines, entity.PackageItem{
			ID:        uuid.New().String(),
			PackageID: pkg.ID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
		})
	}

	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		found, err := store.Items().GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return domain.Invalid("lines", "SKU %s no existe", id)
			}
		}
		return store.Packages().Create(ctx, pkg)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromPackage(pkg)
	return &out, nil
}

// GetByID obtiene un paquete con sus líneas; (nil, nil) si no existe.
func (uc *PackageUseCase) GetByID(ctx context.Context, id string) (*dto.PackageResponse, error) {
	pkg, err := uc.packages.GetByID(ctx, id)
	if err != nil || pkg == nil {
		return nil, err
	}
	out := dto.FromPackage(pkg)
	return &out, nil
}

// List lista paquetes con paginación.
func (uc *PackageUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PackageResponse, error) {
	page.DefaultPage()
	list, err := uc.packages.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromPackage(p))
	}
	return out, nil
}
